package stash

import (
	"io"
	"path"
	"strings"

	"pmvhaven/internal/document"
)

// Fragment is the caller-supplied description of a local file. It is read-only
// once decoded; accessors tolerate missing or oddly typed members.
type Fragment struct {
	raw document.Value
}

// NewFragment wraps an already decoded document.
func NewFragment(raw document.Value) Fragment {
	return Fragment{raw: raw}
}

// DecodeFragment reads one JSON object from r.
func DecodeFragment(r io.Reader) (Fragment, error) {
	raw, err := document.Decode(r)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{raw: raw}, nil
}

// Raw exposes the underlying document.
func (f Fragment) Raw() document.Value {
	return f.raw
}

// IsObject reports whether the fragment decoded to a JSON object.
func (f Fragment) IsObject() bool {
	return f.raw.IsObject()
}

// Filename returns the fragment filename, falling back to the base name of the
// first attached file path.
func (f Fragment) Filename() string {
	if name := f.raw.Get("filename").Text(); name != "" {
		return name
	}
	for _, file := range f.raw.Get("files").Items() {
		if p := strings.TrimSpace(file.Get("path").Text()); p != "" {
			return path.Base(strings.ReplaceAll(p, "\\", "/"))
		}
	}
	return ""
}

// Title returns the fragment title.
func (f Fragment) Title() string {
	return f.raw.Get("title").Text()
}

// URL returns the fragment url, falling back to the first entry of urls.
func (f Fragment) URL() string {
	if u := f.raw.Get("url").Text(); u != "" {
		return u
	}
	for _, item := range f.raw.Get("urls").Items() {
		if u := item.Text(); u != "" {
			return u
		}
	}
	return ""
}
