package analyze

import "github.com/pratapsingh123om/wqam-dashboard/internal/param"

// Pollution labels, coarsest first.
const (
	LabelGood     = "GOOD"
	LabelModerate = "MODERATE"
	LabelPolluted = "POLLUTED"
)

// PollutionScore accumulates an additive heuristic over raw parameter value
// lists. Breakpoints are deliberately coarser than the per-parameter
// thresholds: this is a holistic gestalt, not compliance checking. Missing
// lists contribute zero, so the score degrades instead of failing.
func PollutionScore(values map[param.Key][]float64) (float64, string) {
	score := 0.0

	if bod := values[param.BOD]; len(bod) > 0 {
		switch m := maxOf(bod); {
		case m > 6:
			score += 2
		case m > 3:
			score += 1
		}
	}
	// Oxygen runs inverted: low readings are the hazard.
	if do := values[param.DissolvedOxygen]; len(do) > 0 {
		switch m := minOf(do); {
		case m < 3:
			score += 2
		case m < 5:
			score += 1
		}
	}
	if cod := values[param.COD]; len(cod) > 0 && maxOf(cod) > 250 {
		score += 1
	}
	if ph := values[param.PH]; len(ph) > 0 {
		if m := meanOf(ph); m < 6.5 || m > 8.5 {
			score += 0.5
		}
	}
	if tds := values[param.TDS]; len(tds) > 0 && maxOf(tds) > 2000 {
		score += 0.5
	}

	switch {
	case score >= 3:
		return score, LabelPolluted
	case score >= 1.5:
		return score, LabelModerate
	}
	return score, LabelGood
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func meanOf(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
