package identification

import "regexp"

var (
	trailingPairPattern = regexp.MustCompile(`(\d+)_([A-Za-z0-9]+)$`)
	pairPattern         = regexp.MustCompile(`(\d+)_([A-Za-z0-9]+)`)
	digitsPattern       = regexp.MustCompile(`\d+`)
	alnumPattern        = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// ExtractTokens pulls identifying fragments from a filename stem:
//
//   - a "<digits>_<suffix>" pair yields [pair, digits, suffix]; a pair that
//     ends the stem wins over earlier ones
//   - otherwise the first digit run yields [digits]
//   - otherwise a purely alphanumeric stem yields [stem]
//
// Anything else yields nil.
func ExtractTokens(filename string) []string {
	if filename == "" {
		return nil
	}
	stem := extensionPattern.ReplaceAllString(baseName(stripQueryString(filename)), "")

	match := trailingPairPattern.FindStringSubmatch(stem)
	if match == nil {
		match = pairPattern.FindStringSubmatch(stem)
	}
	if match != nil {
		return []string{match[1] + "_" + match[2], match[1], match[2]}
	}
	if digits := digitsPattern.FindString(stem); digits != "" {
		return []string{digits}
	}
	if alnumPattern.MatchString(stem) {
		return []string{stem}
	}
	return nil
}
