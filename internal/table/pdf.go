package table

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pratapsingh123om/wqam-dashboard/internal/param"
)

const (
	// rowTolerance groups glyphs whose Y coordinates are this close into
	// one visual row.
	rowTolerance = 2.5
	// cellGap is the horizontal whitespace that separates table cells.
	cellGap = 10.0
	// wordGap separates words inside a single cell.
	wordGap = 1.5
)

// fromPDF extracts tables from every page, concatenating them over the
// union of column names. When no page holds a structured table, the
// concatenated page text is scanned for per-parameter numeric patterns.
func fromPDF(data []byte) (*RawTable, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var pageTables []*RawTable
	var text strings.Builder
	for p := 1; p <= r.NumPage(); p++ {
		page := r.Page(p)
		if page.V.IsNull() {
			continue
		}
		rows := clusterRows(filterTexts(page.Content().Text))
		cells := make([][]pdfCell, len(rows))
		for i, row := range rows {
			cells[i] = splitCells(row)
		}
		for _, row := range cells {
			parts := make([]string, len(row))
			for i, c := range row {
				parts[i] = c.text
			}
			text.WriteString(strings.Join(parts, " "))
			text.WriteByte('\n')
		}
		pageTables = append(pageTables, tableRegions(cells)...)
	}

	if len(pageTables) > 0 {
		return concatTables(pageTables), nil
	}
	if t := scanText(text.String()); t != nil {
		return t, nil
	}
	return nil, ErrNoTabularData
}

func filterTexts(texts []pdf.Text) []pdf.Text {
	out := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			out = append(out, t)
		}
	}
	return out
}

// clusterRows buckets glyphs by Y coordinate into visual rows, top to
// bottom, each row sorted left to right.
func clusterRows(texts []pdf.Text) [][]pdf.Text {
	type bucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}
	var buckets []bucket
	for _, t := range texts {
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-rowTolerance && t.Y <= buckets[i].yMax+rowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}
	// PDF Y grows upward; larger Y is higher on the page.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })
	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		sort.Slice(b.texts, func(a, c int) bool { return b.texts[a].X < b.texts[c].X })
		rows[i] = b.texts
	}
	return rows
}

type pdfCell struct {
	x    float64
	text string
}

// splitCells merges a row's glyphs into cells, breaking on horizontal gaps
// wider than cellGap.
func splitCells(row []pdf.Text) []pdfCell {
	var cells []pdfCell
	var cur strings.Builder
	var curX, prevEnd float64
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			cells = append(cells, pdfCell{x: curX, text: s})
		}
		cur.Reset()
	}
	for i, t := range row {
		if i == 0 {
			curX = t.X
		} else {
			gap := t.X - prevEnd
			if gap > cellGap {
				flush()
				curX = t.X
			} else if gap > wordGap {
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	flush()
	return cells
}

// tableRegions finds maximal runs of consecutive multi-cell rows and turns
// each run into a RawTable, first row as header and body cells assigned to
// columns by nearest header X position.
func tableRegions(rows [][]pdfCell) []*RawTable {
	var out []*RawTable
	start := -1
	for i := 0; i <= len(rows); i++ {
		multi := i < len(rows) && len(rows[i]) >= 2
		if multi && start < 0 {
			start = i
		}
		if !multi && start >= 0 {
			if i-start >= 2 {
				if t := regionTable(rows[start:i]); t != nil {
					out = append(out, t)
				}
			}
			start = -1
		}
	}
	return out
}

func regionTable(region [][]pdfCell) *RawTable {
	headerCells := region[0]
	header := make([]string, len(headerCells))
	starts := make([]float64, len(headerCells))
	for i, c := range headerCells {
		header[i] = c.text
		starts[i] = c.x
	}
	body := make([][]*string, 0, len(region)-1)
	for _, row := range region[1:] {
		cells := make([]*string, len(header))
		for _, c := range row {
			j := nearestColumn(starts, c.x)
			if cells[j] == nil {
				cells[j] = strptr(c.text)
			} else {
				joined := *cells[j] + " " + c.text
				cells[j] = &joined
			}
		}
		body = append(body, cells)
	}
	t := newTable(header, body)
	if t.NumRows() == 0 {
		return nil
	}
	return t
}

func nearestColumn(starts []float64, x float64) int {
	best, bestDist := 0, -1.0
	for i, s := range starts {
		d := x - s
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// scanText recovers per-parameter value lists from free-form report text
// and synthesizes a RawTable with one column per parameter found, rows
// padded with nulls to the longest list.
func scanText(text string) *RawTable {
	var headers []string
	var columns [][]string
	longest := 0
	for _, key := range param.All() {
		patterns := key.ScanPatterns()
		if len(patterns) == 0 {
			continue
		}
		var vals []string
		for _, re := range patterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				v := nonNumeric.ReplaceAllString(m[len(m)-1], "")
				switch v {
				case "", ".", "-", "-.":
					continue
				}
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		headers = append(headers, key.String())
		columns = append(columns, vals)
		if len(vals) > longest {
			longest = len(vals)
		}
	}
	if len(headers) == 0 {
		return nil
	}
	body := make([][]*string, longest)
	for r := 0; r < longest; r++ {
		row := make([]*string, len(headers))
		for c, vals := range columns {
			if r < len(vals) {
				row[c] = strptr(vals[r])
			}
		}
		body[r] = row
	}
	return newTable(headers, body)
}
