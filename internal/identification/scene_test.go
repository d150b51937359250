package identification

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"pmvhaven/internal/document"
	"pmvhaven/internal/stash"
)

func TestSceneBuilderFullRecord(t *testing.T) {
	video := mustDoc(t, `{
		"_id": "694f0c1e2b3a4d5e6f708192",
		"title": "Thicc 5",
		"thumbnailUrl": "",
		"thumbnails": [null, "https://img.example/1.jpg", "https://img.example/2.jpg"],
		"uploadDate": "2025-12-25T13:14:15.000Z",
		"starsTags": ["Alice", " ", "Bob"],
		"tags": "pmv, compilation, ,music",
		"description": "Fan edit",
		"creator": ["MakerOne", "MakerTwo"],
		"creatorUrl": "  ",
		"creatorURL": "https://pmvhaven.com/profile/makerone"
	}`)

	scene := SceneBuilder{SiteURL: "https://pmvhaven.com"}.Scene(video)
	want := &stash.Scene{
		Title:      "Thicc 5",
		URL:        "https://pmvhaven.com/video/thicc-5_694f0c1e2b3a4d5e6f708192",
		Image:      "https://img.example/1.jpg",
		Date:       "2025-12-25",
		Performers: []stash.Named{{Name: "Alice"}, {Name: "Bob"}},
		Tags:       []stash.Named{{Name: "pmv"}, {Name: "compilation"}, {Name: "music"}},
		Details:    "Fan edit",
		Studio:     &stash.Studio{Name: "MakerOne", URL: "https://pmvhaven.com/profile/makerone"},
	}
	if !reflect.DeepEqual(scene, want) {
		t.Fatalf("Scene mismatch\n got: %+v\nwant: %+v", scene, want)
	}
}

func TestSceneBuilderSparseRecord(t *testing.T) {
	video := mustDoc(t, `{"_id":"abc","title":"!!!","isoDate":"2024-01-02T00:00:00Z","creator":"Solo"}`)
	scene := SceneBuilder{SiteURL: "https://pmvhaven.com"}.Scene(video)

	if scene.URL != "https://pmvhaven.com/video/abc" {
		t.Fatalf("expected id-only url, got %q", scene.URL)
	}
	if scene.Date != "2024-01-02" || scene.Image != "" {
		t.Fatalf("unexpected date/image %q %q", scene.Date, scene.Image)
	}
	if scene.Studio == nil || scene.Studio.Name != "Solo" || scene.Studio.URL != "" {
		t.Fatalf("unexpected studio %+v", scene.Studio)
	}

	data, err := json.Marshal(scene)
	if err != nil {
		t.Fatalf("marshal scene: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"performers":[]`) || !strings.Contains(out, `"tags":[]`) {
		t.Fatalf("expected empty lists, got %s", out)
	}
	if strings.Contains(out, `"details"`) {
		t.Fatalf("empty description must be omitted, got %s", out)
	}
}

func TestSceneBuilderOmitsStudioWithoutCreator(t *testing.T) {
	scene := SceneBuilder{SiteURL: "https://pmvhaven.com"}.Scene(mustDoc(t, `{"_id":"x","title":"T","creator":[]}`))
	if scene.Studio != nil {
		t.Fatalf("expected no studio, got %+v", scene.Studio)
	}
}

func TestSceneBuilderSelection(t *testing.T) {
	videos := []document.Value{
		mustDoc(t, `{"_id":"a1","title":"Café Mix","thumbnails":["https://img/a.jpg"]}`),
		mustDoc(t, `{"id":"b2","title":"???"}`),
		mustDoc(t, `"not an object"`),
	}
	got := SceneBuilder{SiteURL: "https://pmvhaven.com"}.Selection(videos)
	want := &stash.SelectionOptions{Results: []stash.SelectionOption{
		{Title: "Café Mix", ID: "a1", URL: "https://pmvhaven.com/video/cafe-mix_a1", Thumbnail: "https://img/a.jpg"},
		{Title: "???", ID: "b2", URL: "", Thumbnail: ""},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Selection mismatch\n got: %+v\nwant: %+v", got, want)
	}
}
