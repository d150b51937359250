package identification

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pmvhaven/internal/catalog"
	"pmvhaven/internal/document"
	"pmvhaven/internal/services"
	"pmvhaven/internal/stash"
)

func mustDoc(t *testing.T, raw string) document.Value {
	t.Helper()
	v, err := document.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	return v
}

func mustFragment(t *testing.T, raw string) stash.Fragment {
	t.Helper()
	return stash.NewFragment(mustDoc(t, raw))
}

// fakeCatalog serves scripted search pages in order (repeating the last) and
// watch pages by id.
type fakeCatalog struct {
	t         *testing.T
	searches  []string
	searchErr error
	videos    map[string]string
	watchErrs map[string]error

	queries []string
	watched []string
}

var _ catalog.Searcher = (*fakeCatalog)(nil)

func newFakeCatalog(t *testing.T) *fakeCatalog {
	return &fakeCatalog{t: t, videos: map[string]string{}, watchErrs: map[string]error{}}
}

func (f *fakeCatalog) addVideo(id, title string, duration float64) {
	f.videos[id] = fmt.Sprintf(`{"_id":%q,"title":%q,"duration":%v}`, id, title, duration)
}

func (f *fakeCatalog) Search(_ context.Context, query string, opts catalog.SearchOptions) (document.Value, error) {
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return document.Value{}, f.searchErr
	}
	body := `{"videos":[]}`
	if n := len(f.searches); n > 0 {
		body = f.searches[min(len(f.queries), n)-1]
	}
	return mustDoc(f.t, body), nil
}

func (f *fakeCatalog) WatchPage(_ context.Context, id string) (document.Value, error) {
	f.watched = append(f.watched, id)
	if err := f.watchErrs[id]; err != nil {
		return document.Value{}, err
	}
	video, ok := f.videos[id]
	if !ok {
		return document.Value{}, services.Wrap(services.ErrBadResponse, "catalog", "watch_page", "remote error (HTTP 404): not found", nil)
	}
	return mustDoc(f.t, `{"data":{"video":`+video+`}}`), nil
}

// searchPage renders a search response listing the given ids.
func searchPage(ids ...string) string {
	items := make([]string, 0, len(ids))
	for _, id := range ids {
		items = append(items, fmt.Sprintf(`{"_id":%q,"title":"summary %s"}`, id, id))
	}
	return `{"videos":[` + strings.Join(items, ",") + `]}`
}
