package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// fromDelimited parses comma/semicolon/tab separated text into a RawTable.
// The first record is always treated as the header row, even when it looks
// numeric; ambiguous numeric-only first rows therefore cost one data row.
func fromDelimited(data []byte) (*RawTable, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, errors.New("binary content")
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no rows")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var body [][]*string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(body)+1, err)
		}
		row := make([]*string, len(rec))
		for i, v := range rec {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			row[i] = strptr(v)
		}
		body = append(body, row)
	}
	return newTable(header, body), nil
}

// sniffDelimiter counts candidate separators on the first line and picks
// the most frequent, defaulting to comma.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, c := range []byte{',', ';', '\t'} {
		if n := bytes.Count(line, []byte{c}); n > bestCount {
			best, bestCount = rune(c), n
		}
	}
	return best
}
