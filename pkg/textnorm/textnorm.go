// Package textnorm folds text for loose comparison: Hebrew niqqud and Latin
// diacritics are stripped, case is folded and surrounding space trimmed.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the comparison key for s.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// Transformers and Casers carry state; build them per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

// Overlaps reports whether either folded string contains the other.
// Empty inputs never overlap.
func Overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Similarity scores two folded strings in [0,1]: 1 for equality, the length
// ratio of shorter to longer for containment, 0 otherwise.
func Similarity(a, b string) float64 {
	if !Overlaps(a, b) {
		return 0
	}
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb)
}
