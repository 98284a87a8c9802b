package param

import "strings"

// aliases maps normalized header slugs to parameter keys. Many-to-one:
// real exports spell the same parameter a dozen ways.
var aliases = map[string]Key{
	"ph":                      PH,
	"potentialofhydrogen":     PH,
	"turbidity":               Turbidity,
	"ntu":                     Turbidity,
	"tds":                     TDS,
	"totaldissolvedsolids":    TDS,
	"do":                      DissolvedOxygen,
	"dissolvedoxygen":         DissolvedOxygen,
	"oxygen":                  DissolvedOxygen,
	"chlorine":                FreeChlorine,
	"freechlorine":            FreeChlorine,
	"cl2":                     FreeChlorine,
	"bod":                     BOD,
	"biochemicaloxygendemand": BOD,
	"cod":                     COD,
	"chemicaloxygendemand":    COD,
	"temp":                    Temperature,
	"temperature":             Temperature,
	"watertemp":               Temperature,
}

// keywords are fragments matched as substrings of the lowercased raw header.
// They run last because substring matching is the loosest layer; fragments
// like "d.o." rely on the raw header keeping its punctuation.
var keywords = map[Key][]string{
	BOD:             {"bod", "biochemical", "b.o.d"},
	COD:             {"cod", "chemical"},
	DissolvedOxygen: {"do", "dissolved oxygen", "d.o."},
	PH:              {"ph", "ph "},
	TDS:             {"tds", "total dissolved"},
	Turbidity:       {"turbidity", "ntu"},
	FreeChlorine:    {"chlorine", "freechlorine", "cl2"},
	Temperature:     {"temp"},
}

// Slugify lowercases a header and strips everything but letters and digits.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Matches reports whether a raw header resolves to key. Layered: exact
// slug alias, then slug equal to the key name, then keyword substring on
// the lowercased raw header.
func Matches(header string, key Key) bool {
	slug := Slugify(header)
	if k, ok := aliases[slug]; ok && k == key {
		return true
	}
	if slug == key.String() {
		return true
	}
	lower := strings.ToLower(header)
	for _, kw := range keywords[key] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Resolve returns the index of the first header matching key.
func Resolve(headers []string, key Key) (int, bool) {
	for i, h := range headers {
		if Matches(h, key) {
			return i, true
		}
	}
	return 0, false
}

// ResolveAll returns every header index matching key, in original
// left-to-right order. Duplicate instruments and page-concatenated tables
// legitimately produce more than one column per key.
func ResolveAll(headers []string, key Key) []int {
	var idx []int
	for i, h := range headers {
		if Matches(h, key) {
			idx = append(idx, i)
		}
	}
	return idx
}
