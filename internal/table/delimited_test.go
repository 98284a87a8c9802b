package table

import "testing"

func TestFromDelimitedComma(t *testing.T) {
	tab, err := fromDelimited([]byte("pH,Turbidity\n7.1, 1.2\n7.3,\n"))
	if err != nil {
		t.Fatalf("fromDelimited: %v", err)
	}
	if len(tab.Headers) != 2 || tab.Headers[0] != "pH" {
		t.Fatalf("headers = %v", tab.Headers)
	}
	if tab.NumRows() != 2 {
		t.Fatalf("rows = %d", tab.NumRows())
	}
	if got := *tab.Rows[0][1]; got != "1.2" {
		t.Errorf("cell should be trimmed, got %q", got)
	}
	if tab.Rows[1][1] != nil {
		t.Errorf("empty cell should be nil")
	}
}

func TestSniffDelimiter(t *testing.T) {
	cases := []struct {
		in   string
		want rune
	}{
		{"a,b,c\n1,2,3", ','},
		{"a;b;c\n1;2;3", ';'},
		{"a\tb\tc\n1\t2\t3", '\t'},
		{"one value", ','},
		{"a;b,c;d\n", ';'},
	}
	for _, c := range cases {
		if got := sniffDelimiter([]byte(c.in)); got != c.want {
			t.Errorf("sniffDelimiter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFromDelimitedSemicolon(t *testing.T) {
	tab, err := fromDelimited([]byte("ph;do\n7,1;8,0\n"))
	if err != nil {
		t.Fatalf("fromDelimited: %v", err)
	}
	// Comma is the decimal separator here; the sniffer must pick semicolon.
	if len(tab.Headers) != 2 {
		t.Fatalf("headers = %v", tab.Headers)
	}
}

func TestFromDelimitedRaggedRows(t *testing.T) {
	tab, err := fromDelimited([]byte("a,b,c\n1,2\n1,2,3,4\n"))
	if err != nil {
		t.Fatalf("fromDelimited: %v", err)
	}
	for i, row := range tab.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row))
		}
	}
}

func TestFromDelimitedRejectsBinary(t *testing.T) {
	if _, err := fromDelimited([]byte{'a', 0, 'b'}); err == nil {
		t.Fatal("expected error for NUL bytes")
	}
}

func TestFromDelimitedHeaderOnly(t *testing.T) {
	tab, err := fromDelimited([]byte("pH,Turbidity\n"))
	if err != nil {
		t.Fatalf("fromDelimited: %v", err)
	}
	if tab.NumRows() != 0 {
		t.Fatalf("rows = %d, want 0", tab.NumRows())
	}
}

func TestFromDelimitedSkipsBlankLines(t *testing.T) {
	tab, err := fromDelimited([]byte("pH\n7.0\n\n7.4\n"))
	if err != nil {
		t.Fatalf("fromDelimited: %v", err)
	}
	if tab.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", tab.NumRows())
	}
}
