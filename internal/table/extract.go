package table

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Extraction failure taxonomy. Callers branch with errors.Is; all are
// terminal for the upload that produced them.
var (
	// ErrEmptyInput means no bytes were supplied.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnsupportedFormat means the filename hint names a format with no strategy.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrExtractionFailed means every applicable strategy failed.
	ErrExtractionFailed = errors.New("could not extract a table from file")
	// ErrNoTabularData means a page-based document yielded neither structured
	// tables nor scannable numeric text.
	ErrNoTabularData = errors.New("document contains no tabular data")
)

// strategy is one format parser tried in order until a table comes back.
type strategy struct {
	name string
	run  func([]byte) (*RawTable, error)
}

// Extract turns raw upload bytes into a RawTable. The filename hint only
// selects the strategy order; content decides whether a strategy succeeds.
func Extract(data []byte, filenameHint string) (*RawTable, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	var strategies []strategy
	switch ext := strings.ToLower(filepath.Ext(filenameHint)); ext {
	case ".csv", ".tsv", ".txt", "":
		strategies = []strategy{
			{"delimited", fromDelimited},
			{"spreadsheet", fromXLSX},
		}
	case ".xlsx", ".xls":
		strategies = []strategy{{"spreadsheet", fromXLSX}}
	case ".pdf":
		// fromPDF runs its own internal fallback (tables, then text scan)
		// and reports ErrNoTabularData when both come up empty.
		strategies = []strategy{{"pdf", fromPDF}}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	var errs []string
	for _, s := range strategies {
		t, err := s.run(data)
		if err == nil {
			return t, nil
		}
		if errors.Is(err, ErrNoTabularData) {
			return nil, err
		}
		errs = append(errs, fmt.Sprintf("%s: %v", s.name, err))
	}
	return nil, fmt.Errorf("%w (%s)", ErrExtractionFailed, strings.Join(errs, "; "))
}
