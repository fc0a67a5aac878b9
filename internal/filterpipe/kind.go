// Package filterpipe implements the word FilterPipeline: an ordered chain
// of transforms and rejectors applied to each extracted word candidate.
//
// FilterKind is modeled as a closed tagged variant (an int enum switched on
// directly) rather than a heterogeneous interface list, per the module's
// design note preferring match-over-variant for small, fixed vocabularies
// (see also internal/location.Kind and internal/policy.SitePolicy).
package filterpipe

import "strings"

type FilterKind int

const (
	None FilterKind = iota

	Deunicode
	Decancer
	ToLower
	ToUpper

	AllNumbers
	AllASCII
	AllLower
	AllUpper

	AnyNumbers
	AnyASCII
	AnyLower
	AnyUpper

	NoNumbers
	NoASCII
	NoLower
	NoUpper

	OnlyNumbers
	OnlyASCII
	OnlyLower
	OnlyUpper
)

var names = map[string]FilterKind{
	"none":         None,
	"deunicode":    Deunicode,
	"decancer":     Decancer,
	"to-lower":     ToLower,
	"to-upper":     ToUpper,
	"all-numbers":  AllNumbers,
	"all-ascii":    AllASCII,
	"all-lower":    AllLower,
	"all-upper":    AllUpper,
	"any-numbers":  AnyNumbers,
	"any-ascii":    AnyASCII,
	"any-lower":    AnyLower,
	"any-upper":    AnyUpper,
	"no-numbers":   NoNumbers,
	"no-ascii":     NoASCII,
	"no-lower":     NoLower,
	"no-upper":     NoUpper,
	"only-numbers": OnlyNumbers,
	"only-ascii":   OnlyASCII,
	"only-lower":   OnlyLower,
	"only-upper":   OnlyUpper,
}

func ParseFilterKind(s string) (FilterKind, bool) {
	k, ok := names[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

func (k FilterKind) String() string {
	for name, kind := range names {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// isTransform reports whether kind mutates the running word rather than
// deciding whether to keep it.
func (k FilterKind) isTransform() bool {
	switch k {
	case Deunicode, Decancer, ToLower, ToUpper:
		return true
	default:
		return false
	}
}
