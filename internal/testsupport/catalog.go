package testsupport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// CatalogServer is an httptest stand-in for the PMVHaven API. Search replies
// are served in order, repeating the last one; watch pages are keyed by id.
type CatalogServer struct {
	*httptest.Server

	mu         sync.Mutex
	searches   []string
	videos     map[string]string
	queries    []string
	watchPages []string
	userAgents []string
	failSearch int
}

// NewCatalogServer starts a server that is closed with the test.
func NewCatalogServer(t testing.TB) *CatalogServer {
	t.Helper()
	s := &CatalogServer{videos: map[string]string{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/videos/search", s.handleSearch)
	mux.HandleFunc("GET /api/videos/{id}/watch-page", s.handleWatchPage)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// SetSearchResponses scripts the raw JSON bodies returned by successive searches.
func (s *CatalogServer) SetSearchResponses(bodies ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append([]string(nil), bodies...)
}

// AddVideo registers a watch page whose data.video member is the given JSON object.
func (s *CatalogServer) AddVideo(id, videoJSON string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos[id] = fmt.Sprintf(`{"data":{"video":%s}}`, videoJSON)
}

// AddWatchPage registers a raw watch-page body.
func (s *CatalogServer) AddWatchPage(id, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos[id] = body
}

// FailSearches makes the next n searches answer with HTML, as a challenge page would.
func (s *CatalogServer) FailSearches(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSearch = n
}

// SearchQueries returns the q parameter of every search received.
func (s *CatalogServer) SearchQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// WatchPageIDs returns the ids of every watch page requested.
func (s *CatalogServer) WatchPageIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.watchPages...)
}

// UserAgents returns the User-Agent header of every request.
func (s *CatalogServer) UserAgents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.userAgents...)
}

func (s *CatalogServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.queries = append(s.queries, r.URL.Query().Get("q"))
	s.userAgents = append(s.userAgents, r.UserAgent())
	fail := s.failSearch > 0
	if fail {
		s.failSearch--
	}
	body := `{"videos":[]}`
	if n := len(s.searches); n > 0 {
		idx := len(s.queries) - 1
		if idx >= n {
			idx = n - 1
		}
		body = s.searches[idx]
	}
	s.mu.Unlock()

	if fail {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>checking your browser</html>"))
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *CatalogServer) handleWatchPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	s.watchPages = append(s.watchPages, id)
	s.userAgents = append(s.userAgents, r.UserAgent())
	body, ok := s.videos[id]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, `{"error":"video not found"}`)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(strings.TrimSpace(body)))
}
