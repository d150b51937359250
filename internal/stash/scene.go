package stash

// Named is a {"name": ...} entry used for performers and tags.
type Named struct {
	Name string `json:"name"`
}

// Studio is the optional creator of a scene.
type Studio struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Scene is a fully resolved scene record.
type Scene struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Image      string  `json:"image"`
	Date       string  `json:"date"`
	Performers []Named `json:"performers"`
	Tags       []Named `json:"tags"`
	Details    string  `json:"details,omitempty"`
	Studio     *Studio `json:"studio,omitempty"`
}

// SelectionOption is one shortlisted candidate.
type SelectionOption struct {
	Title     string `json:"title"`
	ID        string `json:"id"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// SelectionOptions is returned when no single candidate is confident enough.
type SelectionOptions struct {
	Results []SelectionOption `json:"results"`
}

// ErrorResult is the failure object written on any fatal error.
type ErrorResult struct {
	Error string `json:"error"`
}

// NamesOf converts plain names into Named entries. The result is never nil.
func NamesOf(names []string) []Named {
	out := make([]Named, 0, len(names))
	for _, name := range names {
		out = append(out, Named{Name: name})
	}
	return out
}
