package filterpipe

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decancerTransformer strips confusable/diacritic decoration (zalgo
// combining marks, accented lookalikes) by decomposing to NFKD and removing
// nonspacing marks. This is the idiomatic Go substitute for a crate like
// Rust's "decancer": the pack carries no direct port, but golang.org/x/text
// is the ecosystem's standard toolkit for exactly this normalization (see
// DESIGN.md).
var decancerTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func decancer(word string) string {
	result, _, err := transform.String(decancerTransformer, word)
	if err != nil {
		return word
	}
	return result
}

func deunicode(word string) string {
	return unidecode.Unidecode(word)
}

func applyTransform(k FilterKind, word string) string {
	switch k {
	case Deunicode:
		return deunicode(word)
	case Decancer:
		return decancer(word)
	case ToLower:
		return strings.ToLower(word)
	case ToUpper:
		return strings.ToUpper(word)
	default:
		return word
	}
}
