package analyze

import (
	"strings"
	"time"

	"github.com/pratapsingh123om/wqam-dashboard/internal/table"
)

// timeColumnCandidates are the header names recognized as a timestamp axis,
// compared case-insensitively after trimming.
var timeColumnCandidates = map[string]struct{}{
	"timestamp":  {},
	"time":       {},
	"date":       {},
	"datetime":   {},
	"sampletime": {},
	"date/time":  {},
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"02-01-2006",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if ts, err := time.Parse(l, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Timeline resolves one timestamp per row without re-ordering rows. A
// recognized time column is parsed with gaps filled forward then backward
// (any still-missing entry takes now); when no column exists or nothing
// parses, a synthetic strictly increasing daily axis ending at now covers
// the row count.
func Timeline(t *table.RawTable, now time.Time) []time.Time {
	n := t.NumRows()
	col := -1
	for i, h := range t.Headers {
		if _, ok := timeColumnCandidates[strings.ToLower(strings.TrimSpace(h))]; ok {
			col = i
			break
		}
	}

	if col >= 0 {
		parsed := make([]*time.Time, n)
		any := false
		for r, cell := range t.Column(col) {
			if cell == nil {
				continue
			}
			if ts, ok := parseTimestamp(*cell); ok {
				parsed[r] = &ts
				any = true
			}
		}
		if any {
			fillTimesForward(parsed)
			fillTimesBackward(parsed)
			out := make([]time.Time, n)
			for r, p := range parsed {
				if p != nil {
					out[r] = *p
				} else {
					out[r] = now
				}
			}
			return out
		}
	}

	// Synthetic axis, one step per row, ending at the processing instant.
	out := make([]time.Time, n)
	for r := 0; r < n; r++ {
		out[r] = now.Add(-time.Duration(n-1-r) * 24 * time.Hour)
	}
	return out
}

func fillTimesForward(ts []*time.Time) {
	var last *time.Time
	for i, t := range ts {
		if t != nil {
			last = t
		} else if last != nil {
			ts[i] = last
		}
	}
}

func fillTimesBackward(ts []*time.Time) {
	var next *time.Time
	for i := len(ts) - 1; i >= 0; i-- {
		if ts[i] != nil {
			next = ts[i]
		} else if next != nil {
			ts[i] = next
		}
	}
}

// FillSeries propagates known values forward then backward across nils.
// Returns nil when every entry is missing, marking the parameter absent.
func FillSeries(vals []*float64) []float64 {
	filled := make([]*float64, len(vals))
	copy(filled, vals)
	var last *float64
	for i, v := range filled {
		if v != nil {
			last = v
		} else if last != nil {
			filled[i] = last
		}
	}
	var next *float64
	for i := len(filled) - 1; i >= 0; i-- {
		if filled[i] != nil {
			next = filled[i]
		} else if next != nil {
			filled[i] = next
		}
	}
	out := make([]float64, len(filled))
	for i, v := range filled {
		if v == nil {
			return nil
		}
		out[i] = *v
	}
	return out
}
