package analyze

import (
	"testing"

	"github.com/pratapsingh123om/wqam-dashboard/internal/param"
	"github.com/pratapsingh123om/wqam-dashboard/internal/table"
)

func sp(s string) *string { return &s }

func TestCoerceCell(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want *float64
	}{
		{"plain", sp("7.2"), fp(7.2)},
		{"unit suffix", sp("7.2 ppm"), fp(7.2)},
		{"unit prefix symbol", sp("≤0.5 mg/L"), fp(0.5)},
		{"negative with unit", sp("-3.1 °C"), fp(-3.1)},
		{"thousands noise", sp("1,250"), fp(1250)},
		{"nil", nil, nil},
		{"empty", sp(""), nil},
		{"dot only", sp("."), nil},
		{"dash only", sp("-"), nil},
		{"dash dot", sp("-."), nil},
		{"text", sp("pending"), nil},
		{"two values degenerate", sp("n=5, val: -3.1"), nil},
		{"double decimal", sp("1.2.3"), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CoerceCell(c.in)
			switch {
			case got == nil && c.want == nil:
			case got == nil || c.want == nil:
				t.Fatalf("CoerceCell = %v, want %v", deref(got), deref(c.want))
			case *got != *c.want:
				t.Fatalf("CoerceCell = %v, want %v", *got, *c.want)
			}
		})
	}
}

func fp(v float64) *float64 { return &v }

func deref(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func TestCollapseFirstNonNullWins(t *testing.T) {
	// Columns "DO (mg/L)" and "do": rows [null,6.0] and [5.0,null].
	a := []*float64{nil, fp(6.0)}
	b := []*float64{fp(5.0), nil}
	got := Collapse([][]*float64{a, b})
	if len(got) != 2 || got[0] == nil || got[1] == nil {
		t.Fatalf("Collapse = %v", got)
	}
	if *got[0] != 5.0 || *got[1] != 6.0 {
		t.Fatalf("Collapse = [%v %v], want [5 6]", *got[0], *got[1])
	}
}

func TestCollapseEmpty(t *testing.T) {
	if got := Collapse(nil); got != nil {
		t.Fatalf("Collapse(nil) = %v, want nil", got)
	}
}

func TestRawValuesConcatenatesDuplicates(t *testing.T) {
	tbl := &table.RawTable{
		Headers: []string{"DO (mg/L)", "pH", "do"},
		Rows: [][]*string{
			{sp("4.0"), sp("7.1"), sp("4.5")},
			{nil, sp("7.3"), sp("5.0")},
		},
	}
	raw := RawValues(tbl)
	// column order: first DO column fully, then the duplicate
	want := []float64{4.0, 4.5, 5.0}
	got := raw[param.DissolvedOxygen]
	if len(got) != len(want) {
		t.Fatalf("raw DO = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("raw DO = %v, want %v", got, want)
		}
	}
	if len(raw[param.PH]) != 2 {
		t.Fatalf("raw pH = %v", raw[param.PH])
	}
}
