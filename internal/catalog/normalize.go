package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes.
// "Hambúrguer" becomes "Hamburguer".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize produces the uniqueness-comparison key for a catalog name:
// surrounding whitespace trimmed, case folded, diacritics stripped.
//
// Two names that normalize identically are the same catalog entry for
// duplicate detection. The original byte sequence is what gets stored and
// displayed; Normalize output is never persisted.
func Normalize(name string) string {
	out, _, err := transform.String(stripMarks, strings.TrimSpace(name))
	if err != nil {
		// Invalid UTF-8 passes through untransformed; comparison still
		// works on the raw bytes.
		out = strings.TrimSpace(name)
	}
	return strings.ToLower(out)
}

// SameName reports whether two names collide under normalized comparison.
func SameName(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
