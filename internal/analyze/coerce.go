package analyze

import (
	"regexp"
	"strconv"

	"github.com/pratapsingh123om/wqam-dashboard/internal/param"
	"github.com/pratapsingh123om/wqam-dashboard/internal/table"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// CoerceCell extracts a numeric value from a raw cell by stripping every
// character outside digits, minus, and decimal point. Degenerate remainders
// and unparseable strings become nil.
func CoerceCell(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	s := nonNumeric.ReplaceAllString(*raw, "")
	switch s {
	case "", ".", "-", "-.":
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// CoerceColumn coerces every cell of a column, preserving length.
func CoerceColumn(cells []*string) []*float64 {
	out := make([]*float64, len(cells))
	for i, c := range cells {
		out[i] = CoerceCell(c)
	}
	return out
}

// Collapse merges duplicate columns that resolved to the same parameter by
// taking, per row, the first non-null value in original left-to-right order.
func Collapse(cols [][]*float64) []*float64 {
	if len(cols) == 0 {
		return nil
	}
	out := make([]*float64, len(cols[0]))
	for r := range out {
		for _, col := range cols {
			if r < len(col) && col[r] != nil {
				out[r] = col[r]
				break
			}
		}
	}
	return out
}

// resolvedColumn coerces and collapses every column of t matching key.
// Returns nil when no header resolves.
func resolvedColumn(t *table.RawTable, key param.Key) []*float64 {
	idx := param.ResolveAll(t.Headers, key)
	if len(idx) == 0 {
		return nil
	}
	cols := make([][]*float64, len(idx))
	for i, j := range idx {
		cols[i] = CoerceColumn(t.Column(j))
	}
	return Collapse(cols)
}

// RawValues collects, per parameter, every non-null coerced value across
// all columns resolving to that key, pre gap-filling. The pollution scorer
// consumes these raw lists.
func RawValues(t *table.RawTable) map[param.Key][]float64 {
	out := map[param.Key][]float64{}
	for _, key := range param.All() {
		for _, j := range param.ResolveAll(t.Headers, key) {
			for _, v := range CoerceColumn(t.Column(j)) {
				if v != nil {
					out[key] = append(out[key], *v)
				}
			}
		}
	}
	return out
}
