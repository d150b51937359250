package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSeparatorPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slugify folds accents, replaces every run of non-alphanumeric ASCII with a
// single dash, trims dashes, and lower-cases the result.
func Slugify(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), value)
	if err != nil {
		folded = value
	}
	slug := slugSeparatorPattern.ReplaceAllString(folded, "-")
	return strings.ToLower(strings.Trim(slug, "-"))
}
