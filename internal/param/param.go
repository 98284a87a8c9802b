package param

import "regexp"

// Key identifies one canonical water-quality parameter.
type Key int

const (
	PH Key = iota
	Turbidity
	TDS
	DissolvedOxygen
	FreeChlorine
	BOD
	COD
	Temperature
)

// String returns the short canonical name used in wire payloads, alias
// tables, and synthesized column headers.
func (k Key) String() string {
	switch k {
	case PH:
		return "ph"
	case Turbidity:
		return "turbidity"
	case TDS:
		return "tds"
	case DissolvedOxygen:
		return "do"
	case FreeChlorine:
		return "chlorine"
	case BOD:
		return "bod"
	case COD:
		return "cod"
	case Temperature:
		return "temperature"
	}
	return "unknown"
}

// All returns every parameter key in registry order.
func All() []Key {
	return []Key{PH, Turbidity, TDS, DissolvedOxygen, FreeChlorine, BOD, COD, Temperature}
}

// Spec holds the static metadata attached to a parameter key. Min/Max are
// nil when no threshold applies in that direction.
type Spec struct {
	Label     string
	Unit      string
	Min       *float64
	Max       *float64
	Directive string
}

// Registry maps keys to their effective metadata. The default registry is
// the embedded table below; callers may derive a copy with overridden
// thresholds (see Clone) without affecting the defaults.
type Registry map[Key]Spec

func f(v float64) *float64 { return &v }

var defaultRegistry = Registry{
	PH: {
		Label:     "pH",
		Unit:      "",
		Min:       f(6.5),
		Max:       f(8.5),
		Directive: "Dose lime or acid to keep pH within 6.5-8.5.",
	},
	Turbidity: {
		Label:     "Turbidity",
		Unit:      "NTU",
		Max:       f(5.0),
		Directive: "Check filters/backwash to reduce particulate load.",
	},
	TDS: {
		Label:     "TDS",
		Unit:      "mg/L",
		Max:       f(500.0),
		Directive: "Investigate source water or ion exchange before distribution.",
	},
	DissolvedOxygen: {
		Label:     "Dissolved Oxygen",
		Unit:      "mg/L",
		Min:       f(5.0),
		Directive: "Increase aeration/recirculation for better oxygen transfer.",
	},
	FreeChlorine: {
		Label:     "Free Chlorine",
		Unit:      "ppm",
		Min:       f(0.2),
		Max:       f(0.5),
		Directive: "Tweak dosing pump to maintain disinfectant residual.",
	},
	BOD: {
		Label:     "BOD",
		Unit:      "mg/L",
		Max:       f(6.0),
		Directive: "Elevated BOD: expand aerated biological treatment and tighten sludge control.",
	},
	COD: {
		Label:     "COD",
		Unit:      "mg/L",
		Max:       f(250.0),
		Directive: "High COD: add chemical pre-treatment or advanced oxidation for industrial loads.",
	},
	Temperature: {
		Label: "Temperature",
		Unit:  "°C",
	},
}

// DefaultRegistry returns a copy of the embedded parameter table.
func DefaultRegistry() Registry {
	r := make(Registry, len(defaultRegistry))
	for k, v := range defaultRegistry {
		r[k] = v
	}
	return r
}

// Clone returns a copy of r safe to mutate.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ScanPatterns returns the free-text scan patterns for keys that can be
// recovered from unstructured report prose. Keys without patterns return nil.
func (k Key) ScanPatterns() []*regexp.Regexp {
	return scanPatterns[k]
}

// Patterns mirror lab-report phrasing: parameter token, up to a few filler
// characters, then the reading.
var scanPatterns = map[Key][]*regexp.Regexp{
	BOD: {
		regexp.MustCompile(`(?i)bod[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
		regexp.MustCompile(`(?i)biochemical oxygen demand[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
	},
	DissolvedOxygen: {
		regexp.MustCompile(`(?i)\bdo[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
		regexp.MustCompile(`(?i)dissolved oxygen[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
	},
	COD: {
		regexp.MustCompile(`(?i)\bcod[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
		regexp.MustCompile(`(?i)chemical oxygen demand[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
	},
	PH: {
		regexp.MustCompile(`(?i)\bph[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
	},
	TDS: {
		regexp.MustCompile(`(?i)\btds[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
		regexp.MustCompile(`(?i)total dissolved solids[^\d\-.]{0,6}([0-9]+(?:\.[0-9]+)?)`),
	},
}
