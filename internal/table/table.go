package table

import (
	"fmt"
	"strings"
)

// RawTable is a rectangular grid of nullable string cells under an ordered
// header row. Every row holds exactly len(Headers) cells; fully-null rows
// are dropped at construction time.
type RawTable struct {
	Headers []string
	Rows    [][]*string
}

// NumRows returns the body row count.
func (t *RawTable) NumRows() int { return len(t.Rows) }

// Column returns the cells of column i across all rows.
func (t *RawTable) Column(i int) []*string {
	out := make([]*string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// newTable builds a RawTable from a header row and body rows, normalizing
// headers, padding/truncating each row to header length, and dropping rows
// whose cells are all null or blank.
func newTable(header []string, body [][]*string) *RawTable {
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = CleanHeader(h, i)
	}
	t := &RawTable{Headers: headers}
	for _, row := range body {
		fitted := fitRow(row, len(headers))
		if rowEmpty(fitted) {
			continue
		}
		t.Rows = append(t.Rows, fitted)
	}
	return t
}

// CleanHeader strips embedded line breaks, collapses internal whitespace,
// and synthesizes a positional name for empty headers.
func CleanHeader(h string, pos int) string {
	h = strings.ReplaceAll(h, "\r", " ")
	h = strings.ReplaceAll(h, "\n", " ")
	h = strings.Join(strings.Fields(h), " ")
	if h == "" {
		return fmt.Sprintf("col_%d", pos)
	}
	return h
}

func fitRow(row []*string, n int) []*string {
	out := make([]*string, n)
	for i := 0; i < n && i < len(row); i++ {
		out[i] = row[i]
	}
	return out
}

func rowEmpty(row []*string) bool {
	for _, c := range row {
		if c != nil && strings.TrimSpace(*c) != "" {
			return false
		}
	}
	return true
}

func strptr(s string) *string { return &s }

// concatTables merges per-page tables row-wise over the union of their
// column names, in first-seen order. Columns absent from a given table
// contribute nulls for its rows.
func concatTables(tables []*RawTable) *RawTable {
	var headers []string
	pos := map[string]int{}
	for _, t := range tables {
		for _, h := range t.Headers {
			if _, ok := pos[h]; !ok {
				pos[h] = len(headers)
				headers = append(headers, h)
			}
		}
	}
	out := &RawTable{Headers: headers}
	for _, t := range tables {
		for _, row := range t.Rows {
			merged := make([]*string, len(headers))
			for i, h := range t.Headers {
				if i < len(row) {
					merged[pos[h]] = row[i]
				}
			}
			out.Rows = append(out.Rows, merged)
		}
	}
	return out
}
