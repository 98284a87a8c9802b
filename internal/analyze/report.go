package analyze

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pratapsingh123om/wqam-dashboard/internal/mlmodel"
	"github.com/pratapsingh123om/wqam-dashboard/internal/param"
	"github.com/pratapsingh123om/wqam-dashboard/internal/table"
)

// Pipeline failure taxonomy beyond extraction; see table package for the
// extraction sentinels.
var (
	// ErrEmptyAfterCleaning means the table had no usable rows once blank
	// rows were dropped.
	ErrEmptyAfterCleaning = errors.New("dataset is empty after cleaning")
	// ErrNoRecognizedParameters means no column resolved to any known key.
	ErrNoRecognizedParameters = errors.New("no recognized water-quality parameters in file")
)

// Point is one time-series sample on the wire.
type Point struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Series is a parameter's full sampled history within one report.
type Series struct {
	Parameter string  `json:"parameter"`
	Points    []Point `json:"points"`
}

// Pollution carries the heuristic score plus the optional model outputs.
type Pollution struct {
	Score          float64              `json:"score"`
	Label          string               `json:"label"`
	Prediction     *float64             `json:"prediction,omitempty"`
	Forecasts      map[string][]float64 `json:"forecasts"`
	ModelAvailable bool                 `json:"model_available"`
}

// MapStatus is the overall qualitative standing derived from alerts.
type MapStatus string

const (
	MapStatusGood    MapStatus = "good"
	MapStatusWarning MapStatus = "warning"
	MapStatusPoor    MapStatus = "poor"
)

// Report is the aggregate result of one upload. Immutable once assembled;
// the caller owns it and may keep a bounded history.
type Report struct {
	ID              string    `json:"id"`
	UploadedBy      string    `json:"uploaded_by"`
	CreatedAt       string    `json:"created_at"`
	SourceFilename  string    `json:"source_filename,omitempty"`
	Parameters      []Summary `json:"parameters"`
	Timeseries      []Series  `json:"timeseries"`
	Alerts          []Alert   `json:"alerts"`
	Recommendations []string  `json:"recommendations"`
	Pollution       Pollution `json:"pollution"`
	MapStatus       MapStatus `json:"map_status"`
}

const (
	pointTimeLayout = "2006-01-02 15:04:05"
	forecastSteps   = 3
	// allClear is the single recommendation issued when nothing trips.
	allClear = "All monitored parameters fall within the configured guardrails."
)

// forecastKeys are the parameters given a short-horizon trend line.
var forecastKeys = []param.Key{param.PH, param.DissolvedOxygen, param.Turbidity, param.TDS}

// Pipeline runs the full document-to-report transformation. Invocations
// are pure and independently schedulable; the only shared state is the
// lazily-loaded model handle.
type Pipeline struct {
	registry param.Registry
	model    *mlmodel.Handle
	now      func() time.Time
}

// Option tunes pipeline construction.
type Option func(*Pipeline)

// WithRegistry substitutes the parameter registry, e.g. with thresholds
// overridden from config.
func WithRegistry(r param.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithModel attaches the optional pollution model handle.
func WithModel(h *mlmodel.Handle) Option {
	return func(p *Pipeline) { p.model = h }
}

// WithClock fixes the processing instant, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline builds a pipeline with the embedded registry and no model
// unless options say otherwise.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: param.DefaultRegistry(),
		model:    mlmodel.NewHandle(""),
		now:      time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ExtractTable exposes raw extraction for callers that want normalized
// tabular data without evaluation.
func (p *Pipeline) ExtractTable(data []byte, filenameHint string) (*table.RawTable, error) {
	return table.Extract(data, filenameHint)
}

// BuildReport runs the whole pipeline over one upload.
func (p *Pipeline) BuildReport(data []byte, filenameHint, uploadedBy string) (*Report, error) {
	t, err := table.Extract(data, filenameHint)
	if err != nil {
		return nil, err
	}
	return p.buildFromTable(t, filenameHint, uploadedBy)
}

func (p *Pipeline) buildFromTable(t *table.RawTable, filenameHint, uploadedBy string) (*Report, error) {
	if t.NumRows() == 0 {
		return nil, ErrEmptyAfterCleaning
	}
	now := p.now().UTC()
	timestamps := Timeline(t, now)

	var (
		summaries       []Summary
		series          []Series
		alerts          []Alert
		recommendations []string
	)
	for _, key := range param.All() {
		coerced := resolvedColumn(t, key)
		if coerced == nil {
			continue
		}
		filled := FillSeries(coerced)
		if filled == nil {
			continue
		}
		spec := p.registry[key]
		summary, alert := Evaluate(key, spec, filled, now)
		summaries = append(summaries, summary)
		if alert != nil {
			alerts = append(alerts, *alert)
			recommendations = appendUnique(recommendations, spec.Directive)
		}
		pts := make([]Point, len(filled))
		for i, v := range filled {
			pts[i] = Point{Timestamp: timestamps[i].Format(pointTimeLayout), Value: round3(v)}
		}
		series = append(series, Series{Parameter: spec.Label, Points: pts})
	}
	if len(summaries) == 0 {
		return nil, ErrNoRecognizedParameters
	}

	raw := RawValues(t)
	pollution := p.pollution(t, raw)
	recommendations = p.insightRecommendations(recommendations, pollution.Label, raw)
	if len(recommendations) == 0 {
		recommendations = append(recommendations, allClear)
	}

	return &Report{
		ID:              strings.ReplaceAll(uuid.New().String(), "-", ""),
		UploadedBy:      uploadedBy,
		CreatedAt:       now.Format(time.RFC3339),
		SourceFilename:  filenameHint,
		Parameters:      summaries,
		Timeseries:      series,
		Alerts:          alerts,
		Recommendations: recommendations,
		Pollution:       pollution,
		MapStatus:       overallStatus(alerts),
	}, nil
}

// pollution combines the heuristic score, the per-parameter trend
// forecasts, and the optional model prediction.
func (p *Pipeline) pollution(t *table.RawTable, raw map[param.Key][]float64) Pollution {
	score, label := PollutionScore(raw)
	out := Pollution{Score: score, Label: label, Forecasts: map[string][]float64{}}

	for _, key := range forecastKeys {
		if fc := mlmodel.ForecastTrend(raw[key], forecastSteps); fc != nil {
			out.Forecasts[key.String()] = fc
		}
	}

	model, ok := p.model.Load()
	out.ModelAvailable = ok
	if ok {
		if features := p.features(t); features != nil {
			v := model.Predict(features)
			out.Prediction = &v
		}
	}
	return out
}

// features builds the model input: every resolved parameter column,
// median-imputed. The regressor wants at least three numeric columns.
func (p *Pipeline) features(t *table.RawTable) [][]float64 {
	var cols [][]*float64
	for _, key := range param.All() {
		if col := resolvedColumn(t, key); col != nil {
			cols = append(cols, col)
		}
	}
	if len(cols) < 3 {
		return nil
	}
	return mlmodel.MedianImpute(cols)
}

// insightRecommendations appends the advisory lines derived from the
// pollution label and raw readings, deduplicated against what threshold
// evaluation already produced.
func (p *Pipeline) insightRecommendations(recs []string, label string, raw map[param.Key][]float64) []string {
	switch label {
	case LabelPolluted:
		recs = appendUnique(recs, "Immediate action required: water quality is below acceptable standards.")
	case LabelModerate:
		recs = appendUnique(recs, "Monitor closely: water quality is approaching threshold limits.")
	}
	if do := raw[param.DissolvedOxygen]; len(do) > 0 && minOf(do) < 5 {
		recs = appendUnique(recs, "Low dissolved oxygen detected. Increase aeration and reduce organic load.")
	}
	if bod := raw[param.BOD]; len(bod) > 0 && maxOf(bod) > 6 {
		recs = appendUnique(recs, "High BOD detected. Prioritize biological treatment upgrades.")
	}
	if ph := raw[param.PH]; len(ph) > 0 {
		if m := meanOf(ph); m < 6.5 || m > 8.5 {
			recs = appendUnique(recs, "pH out of optimal range. Adjust with acid/alkali dosing.")
		}
	}
	return recs
}

func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

func overallStatus(alerts []Alert) MapStatus {
	status := MapStatusGood
	for _, a := range alerts {
		switch a.Severity {
		case SeverityCritical:
			return MapStatusPoor
		case SeverityWarning:
			status = MapStatusWarning
		}
	}
	return status
}

// Describe renders a one-line summary for logs and CLI output.
func (r *Report) Describe() string {
	return fmt.Sprintf("%d parameters, %d alerts, pollution %s (%.1f), status %s",
		len(r.Parameters), len(r.Alerts), r.Pollution.Label, r.Pollution.Score, r.MapStatus)
}
