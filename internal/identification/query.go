package identification

import (
	"regexp"
	"strings"
)

var (
	sceneIDPattern    = regexp.MustCompile(`[a-f0-9]{24}`)
	storageKeyPattern = regexp.MustCompile(`[A-Za-z0-9_-]+\.[A-Za-z0-9]+$`)
	// Only the last dotted part is an extension: "v1.2.mp4" keeps "v1.2".
	extensionPattern = regexp.MustCompile(`\.[^.]+$`)
	// A long digit run (an upload timestamp) ends the human part of a name.
	spacedTimestampPattern   = regexp.MustCompile(`\s\d{8,}\s`)
	boundaryTimestampPattern = regexp.MustCompile(`\b\d{8,}`)
	whitespacePattern        = regexp.MustCompile(`\s+`)
	separatorReplacer        = strings.NewReplacer("_", " ", "-", " ")
)

// SceneID returns the first 24-character lowercase hex run in text, or "".
func SceneID(text string) string {
	return sceneIDPattern.FindString(text)
}

// StorageKey extracts a storage-style object name ("name.ext") from a path or
// URL, ignoring any query string.
func StorageKey(value string) string {
	if value == "" {
		return ""
	}
	name := baseName(stripQueryString(value))
	if key := storageKeyPattern.FindString(name); key != "" {
		return key
	}
	if strings.Contains(name, ".") {
		return name
	}
	return ""
}

// BuildQuery reduces a filename, path, or title to search text:
//
//	"/media/TaT_-_(Tits,Ass,&Tats).mp4" -> "(Tits,Ass,&Tats)"
//	"Thicc_5_1766671291932_folhscuz.mp4" -> "Thicc 5"
//
// The result never has leading, trailing, or doubled spaces. Running
// BuildQuery again on its output leaves names without a dot unchanged.
func BuildQuery(value string) string {
	if value == "" {
		return ""
	}
	name := baseName(stripQueryString(value))
	name = extensionPattern.ReplaceAllString(name, "")
	if _, after, ok := strings.Cut(name, "_-_"); ok {
		name = after
	}
	name = separatorReplacer.Replace(name)
	if loc := spacedTimestampPattern.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	} else if loc := boundaryTimestampPattern.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(name, " "))
}

// TrimQuery drops the first word of a query. Queries of one word or fewer
// become "".
func TrimQuery(query string) string {
	words := strings.Fields(query)
	if len(words) <= 1 {
		return ""
	}
	return strings.Join(words[1:], " ")
}

func stripQueryString(value string) string {
	before, _, _ := strings.Cut(value, "?")
	return before
}

// baseName returns the final path segment, treating both slash styles as
// separators.
func baseName(value string) string {
	return value[strings.LastIndexAny(value, `/\`)+1:]
}
