// Package mlmodel wraps the optional pre-trained pollution regressor and
// the short-horizon trend extrapolation used for forward-looking display.
// Absence of the model artifact is a supported state, never an error.
package mlmodel

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Model is a linear regressor over median-imputed numeric columns.
type Model struct {
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`
}

// Handle is a lazily-initialized, shared-read-only model reference. Load is
// attempted once per process; every later call returns the cached outcome.
type Handle struct {
	path  string
	once  sync.Once
	model *Model
	err   error
}

// NewHandle prepares a handle for the artifact at path. An empty path is a
// permanent "not available" handle.
func NewHandle(path string) *Handle {
	return &Handle{path: path}
}

// Load returns the model and whether it is available.
func (h *Handle) Load() (*Model, bool) {
	h.once.Do(func() {
		if h.path == "" {
			return
		}
		b, err := os.ReadFile(h.path)
		if err != nil {
			h.err = fmt.Errorf("read model artifact: %w", err)
			return
		}
		var m Model
		if err := yaml.Unmarshal(b, &m); err != nil {
			h.err = fmt.Errorf("decode model artifact: %w", err)
			return
		}
		if len(m.Coefficients) == 0 {
			h.err = fmt.Errorf("model artifact %s has no coefficients", h.path)
			return
		}
		h.model = &m
	})
	return h.model, h.model != nil
}

// Err reports why the model failed to load, if it did.
func (h *Handle) Err() error { return h.err }

// Predict returns the mean prediction across feature rows. Rows shorter
// than the coefficient vector are zero-padded; longer rows are truncated.
func (m *Model) Predict(rows [][]float64) float64 {
	if len(rows) == 0 {
		return m.Intercept
	}
	total := 0.0
	for _, row := range rows {
		p := m.Intercept
		for i, c := range m.Coefficients {
			if i < len(row) {
				p += c * row[i]
			}
		}
		total += p
	}
	return total / float64(len(rows))
}

// MedianImpute converts nullable columns into dense feature rows, replacing
// missing entries with the column median. Columns with no values at all
// impute to zero.
func MedianImpute(cols [][]*float64) [][]float64 {
	if len(cols) == 0 {
		return nil
	}
	n := 0
	for _, col := range cols {
		if len(col) > n {
			n = len(col)
		}
	}
	medians := make([]float64, len(cols))
	for j, col := range cols {
		var present []float64
		for _, v := range col {
			if v != nil {
				present = append(present, *v)
			}
		}
		medians[j] = median(present)
	}
	rows := make([][]float64, n)
	for r := 0; r < n; r++ {
		row := make([]float64, len(cols))
		for j, col := range cols {
			if r < len(col) && col[r] != nil {
				row[j] = *col[r]
			} else {
				row[j] = medians[j]
			}
		}
		rows[r] = row
	}
	return rows
}

func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	cp := make([]float64, len(vs))
	copy(cp, vs)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 0 {
		return (cp[mid-1] + cp[mid]) / 2
	}
	return cp[mid]
}

// ForecastTrend fits a least-squares line over the series index and
// extrapolates the next steps values. Needs at least three points.
func ForecastTrend(series []float64, steps int) []float64 {
	n := len(series)
	if n < 3 || steps <= 0 {
		return nil
	}
	// x = 0..n-1
	var sumX, sumY, sumXX, sumXY float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn
	out := make([]float64, steps)
	for s := 0; s < steps; s++ {
		out[s] = intercept + slope*float64(n+s)
	}
	return out
}
