package catalog_test

import (
	"testing"

	"pmvhaven/internal/catalog"
	"pmvhaven/internal/document"
)

func parse(t *testing.T, raw string) document.Value {
	t.Helper()
	v, err := document.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return v
}

func TestCandidatesLocations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"videos", `{"videos":[{},{}]}`, 2},
		{"results", `{"results":[{}]}`, 1},
		{"data list", `{"data":[{},{},{}]}`, 3},
		{"data.videos", `{"data":{"videos":[{}]}}`, 1},
		{"data.results", `{"data":{"results":[{},{}]}}`, 2},
		{"videos wins over data", `{"data":[{}],"videos":[{},{}]}`, 2},
		{"non-list videos ignored", `{"videos":{"x":1},"results":[{}]}`, 1},
		{"nothing", `{"total":0}`, 0},
		{"not an object", `[1,2]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(catalog.Candidates(parse(t, tt.raw))); got != tt.want {
				t.Fatalf("Candidates() returned %d items, want %d", got, tt.want)
			}
		})
	}
}

func TestVideoIDFallbacks(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"_id":"a","id":"b"}`, "a"},
		{`{"id":"b","videoId":"c"}`, "b"},
		{`{"videoId":"c"}`, "c"},
		{`{"id":17}`, "17"},
		{`{"_id":""}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		if got := catalog.VideoID(parse(t, tt.raw)); got != tt.want {
			t.Fatalf("VideoID(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestVideoRequiresObject(t *testing.T) {
	if _, ok := catalog.Video(parse(t, `{"data":{"video":{"_id":"x"}}}`)); !ok {
		t.Fatal("expected video")
	}
	if _, ok := catalog.Video(parse(t, `{"data":{"video":null}}`)); ok {
		t.Fatal("expected miss for null video")
	}
	if _, ok := catalog.Video(parse(t, `{"data":{}}`)); ok {
		t.Fatal("expected miss for absent video")
	}
}
