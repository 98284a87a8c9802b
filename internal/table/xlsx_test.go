package table

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestFromXLSX(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"pH", "Turbidity"},
		{7.1, 1.2},
		{7.3, 1.5},
	})
	tab, err := fromXLSX(data)
	if err != nil {
		t.Fatalf("fromXLSX: %v", err)
	}
	if len(tab.Headers) != 2 || tab.Headers[0] != "pH" {
		t.Fatalf("headers = %v", tab.Headers)
	}
	if tab.NumRows() != 2 {
		t.Fatalf("rows = %d", tab.NumRows())
	}
	if tab.Rows[0][0] == nil || *tab.Rows[0][0] != "7.1" {
		t.Fatalf("cell = %v", tab.Rows[0][0])
	}
}

func TestFromXLSXRejectsGarbage(t *testing.T) {
	if _, err := fromXLSX([]byte("not a zip archive")); err == nil {
		t.Fatal("expected error for non-workbook bytes")
	}
}

func TestExtractRoutesXLSXByExtension(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"do"},
		{8.0},
	})
	tab, err := Extract(data, "samples.xlsx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if tab.Headers[0] != "do" {
		t.Fatalf("headers = %v", tab.Headers)
	}
}
