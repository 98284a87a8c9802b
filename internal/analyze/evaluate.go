package analyze

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pratapsingh123om/wqam-dashboard/internal/param"
)

// Severity classifies a parameter's observed range against its thresholds.
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Summary is the per-parameter aggregate of one report. Statistics cover
// the gap-filled series, so propagated values participate; with the small
// sample sizes of manual sampling logs that keeps single gaps from
// vanishing out of the aggregates, at the cost of inflating apparent
// sample support.
type Summary struct {
	Parameter string   `json:"parameter"`
	Unit      string   `json:"unit"`
	Average   float64  `json:"average"`
	Minimum   float64  `json:"minimum"`
	Maximum   float64  `json:"maximum"`
	Status    Severity `json:"status"`
	Directive string   `json:"directive,omitempty"`
}

// Alert is an ephemeral out-of-range notice, regenerated on every report.
type Alert struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
}

// hysteresis multipliers for the critical band: 20% beyond the nominal
// limit on either side, so marginal excursions stay at warning.
const (
	criticalMinFactor = 0.8
	criticalMaxFactor = 1.2
)

// Evaluate computes the summary for one gap-filled series and, when the
// status is not ok, the matching alert.
func Evaluate(key param.Key, spec param.Spec, filled []float64, at time.Time) (Summary, *Alert) {
	minV, maxV, sum := filled[0], filled[0], 0.0
	for _, v := range filled {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
	}
	avg := sum / float64(len(filled))

	status := SeverityOK
	if spec.Min != nil && minV < *spec.Min {
		status = SeverityWarning
	}
	if spec.Max != nil && maxV > *spec.Max {
		status = SeverityWarning
	}
	if (spec.Min != nil && minV < *spec.Min*criticalMinFactor) ||
		(spec.Max != nil && maxV > *spec.Max*criticalMaxFactor) {
		status = SeverityCritical
	}

	s := Summary{
		Parameter: spec.Label,
		Unit:      spec.Unit,
		Average:   round3(avg),
		Minimum:   round3(minV),
		Maximum:   round3(maxV),
		Status:    status,
	}
	if status == SeverityOK {
		return s, nil
	}
	s.Directive = spec.Directive
	return s, &Alert{
		ID:        fmt.Sprintf("%s-%s", key, uuid.New().String()[:6]),
		Title:     fmt.Sprintf("%s out of range", spec.Label),
		Severity:  status,
		Message:   fmt.Sprintf("%s recorded %.2f %s", spec.Label, maxV, spec.Unit),
		Timestamp: at.Format(time.RFC3339),
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
