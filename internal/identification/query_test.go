package identification

import (
	"reflect"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TaT_-_(Tits,Ass,&Tats).mp4", "(Tits,Ass,&Tats)"},
		{"/media/pmv/TaT_-_(Tits,Ass,&Tats).mp4", "(Tits,Ass,&Tats)"},
		{"Thicc_5_1766671291932_folhscuz.mp4", "Thicc 5"},
		{`C:\Stash\Thicc_5_1766671291932_folhscuz.mp4`, "Thicc 5"},
		{"https://cdn.example/videos/Best-Of--2024.mp4?token=abc", "Best Of 2024"},
		{"Compilation 20240101", "Compilation"},
		{"  Lots   of   space  ", "Lots of space"},
		{"", ""},
		{".mp4", ""},
		{"archive.tar.gz", "archive.tar"},
		{"Song_v1.2.mp4", "Song v1.2"},
		{"Best.PMV.Mix", "Best.PMV"},
	}
	for _, tt := range tests {
		if got := BuildQuery(tt.in); got != tt.want {
			t.Errorf("BuildQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildQueryIsIdempotent(t *testing.T) {
	inputs := []string{
		"TaT_-_(Tits,Ass,&Tats).mp4",
		"Thicc_5_1766671291932_folhscuz.mp4",
		"a_-_b_-_c.mkv",
		"Who Is She? part 2",
		"AC/DC tribute.webm",
		"trailing dots...",
		"Best Of 2024 final.mov",
	}
	for _, in := range inputs {
		once := BuildQuery(in)
		if twice := BuildQuery(once); twice != once {
			t.Errorf("BuildQuery not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestStorageKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://storage.example/bucket/Thicc_5_1766671291932_folhscuz.mp4?sig=1", "Thicc_5_1766671291932_folhscuz.mp4"},
		{"/local/My Clip (final).mp4", "My Clip (final).mp4"},
		{"/local/clip.final-cut.mp4", "final-cut.mp4"},
		{"no extension here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StorageKey(tt.in); got != tt.want {
			t.Errorf("StorageKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSceneID(t *testing.T) {
	if got := SceneID("clip_694f0c1e2b3a4d5e6f708192.mp4"); got != "694f0c1e2b3a4d5e6f708192" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := SceneID("694F0C1E2B3A4D5E6F708192"); got != "" {
		t.Fatalf("uppercase hex must not match, got %q", got)
	}
	if got := SceneID("abc123"); got != "" {
		t.Fatalf("short hex must not match, got %q", got)
	}
}

func TestTrimQuery(t *testing.T) {
	tests := map[string]string{
		"Thicc 5 Extra": "5 Extra",
		"  two  words ": "words",
		"single":        "",
		"":              "",
	}
	for in, want := range tests {
		if got := TrimQuery(in); got != want {
			t.Errorf("TrimQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildQueryOnDottedURLSlug(t *testing.T) {
	if got := BuildQuery(urlSlug("https://pmvhaven.com/video/Best.PMV.Mix")); got != "Best.PMV" {
		t.Fatalf("unexpected query %q", got)
	}
}

func TestURLSlug(t *testing.T) {
	tests := map[string]string{
		"https://pmvhaven.com/video/thicc-5-pmv":         "thicc-5-pmv",
		"https://pmvhaven.com/video/thicc-5-pmv/":        "thicc-5-pmv",
		"https://pmvhaven.com/video/thicc-5-pmv?ref=abc": "thicc-5-pmv",
		"https://pmvhaven.com/video/?":                   "",
	}
	for in, want := range tests {
		if got := urlSlug(in); got != want {
			t.Errorf("urlSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Thicc_5_1766671291932_folhscuz.mp4", []string{"1766671291932_folhscuz", "1766671291932", "folhscuz"}},
		{"tomtom10_-_Thicc_5_1766671291932_folhscuz.mp4?sig=abc", []string{"1766671291932_folhscuz", "1766671291932", "folhscuz"}},
		{"https://cdn.example/v/clip_12_ab.mp4?x=1_y", []string{"12_ab", "12", "ab"}},
		{"clip_12_ab_more.mp4", []string{"12_ab", "12", "ab"}},
		{"Best Of 2024.mp4", []string{"2024"}},
		{"folhscuz.mp4", []string{"folhscuz"}},
		{"/path/to/abc123.webm", []string{"123"}},
		{"Just Words.mp4", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ExtractTokens(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExtractTokens(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
