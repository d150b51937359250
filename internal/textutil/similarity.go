package textutil

import (
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// Lower applies Unicode lower-case mapping.
func Lower(s string) string {
	return lowerCaser.String(s)
}

// SequenceRatio returns 2*M/T where M is the number of characters covered by
// the longest matching blocks between a and b and T is their combined length.
// The comparison is per code point. Two empty strings are identical (1.0).
func SequenceRatio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// TitleSimilarity lower-cases both titles and returns their sequence ratio. An
// empty side scores 0 rather than matching another empty side.
func TitleSimilarity(query, title string) float64 {
	if query == "" || title == "" {
		return 0
	}
	return SequenceRatio(Lower(query), Lower(title))
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
