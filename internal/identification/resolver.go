package identification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pmvhaven/internal/catalog"
	"pmvhaven/internal/config"
	"pmvhaven/internal/document"
	"pmvhaven/internal/logging"
	"pmvhaven/internal/services"
	"pmvhaven/internal/stash"
)

// Decision names how a resolution concluded.
type Decision string

const (
	DecisionDirectID         Decision = "direct_id"
	DecisionBestMatch        Decision = "best_match"
	DecisionDurationFallback Decision = "duration_fallback"
	DecisionShortlist        Decision = "shortlist"
)

// Settings tunes search and scoring.
type Settings struct {
	SiteURL               string
	SearchLimit           int
	SearchPage            int
	SearchAttempts        int
	DurationTolerance     float64
	PrefilterThreshold    int
	DetailLimit           int
	ShortlistSize         int
	BroadenOnRetry        bool
	SummaryDurationFilter bool
}

// SettingsFromConfig copies the search section of cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		SiteURL:               cfg.API.BaseURL,
		SearchLimit:           cfg.Search.Limit,
		SearchPage:            cfg.Search.Page,
		SearchAttempts:        cfg.Search.Attempts,
		DurationTolerance:     cfg.Search.DurationTolerance,
		PrefilterThreshold:    cfg.Search.PrefilterThreshold,
		DetailLimit:           cfg.Search.DetailLimit,
		ShortlistSize:         cfg.Search.ShortlistSize,
		BroadenOnRetry:        cfg.Search.BroadenOnRetry,
		SummaryDurationFilter: cfg.Search.SummaryDurationFilter,
	}
}

// Outcome records what a resolution derived and decided. Exactly one of
// Scene and Selection is set on success.
type Outcome struct {
	Method    string
	Query     string
	Tokens    []string
	Durations []float64
	// Attempts is the number of searches issued.
	Attempts  int
	Ranked    []ScoredCandidate
	Decision  Decision
	Scene     *stash.Scene
	Selection *stash.SelectionOptions
}

// Result returns the caller-facing payload.
func (o *Outcome) Result() any {
	if o.Scene != nil {
		return o.Scene
	}
	return o.Selection
}

// Resolver drives a single scrape against the catalog.
type Resolver struct {
	catalog  catalog.Searcher
	settings Settings
	builder  SceneBuilder
	logger   *slog.Logger
}

// NewResolver wires a resolver. Non-positive limits and an empty site URL
// fall back to the configuration defaults.
func NewResolver(searcher catalog.Searcher, settings Settings, logger *slog.Logger) *Resolver {
	cfg := config.Default()
	defaults := SettingsFromConfig(&cfg)
	if settings.SiteURL == "" {
		settings.SiteURL = defaults.SiteURL
	}
	settings.SiteURL = strings.TrimRight(settings.SiteURL, "/")
	if settings.SearchLimit <= 0 {
		settings.SearchLimit = defaults.SearchLimit
	}
	if settings.SearchPage <= 0 {
		settings.SearchPage = defaults.SearchPage
	}
	if settings.SearchAttempts <= 0 {
		settings.SearchAttempts = defaults.SearchAttempts
	}
	if settings.DetailLimit <= 0 {
		settings.DetailLimit = defaults.DetailLimit
	}
	if settings.ShortlistSize <= 0 {
		settings.ShortlistSize = defaults.ShortlistSize
	}
	return &Resolver{
		catalog:  searcher,
		settings: settings,
		builder:  SceneBuilder{SiteURL: settings.SiteURL},
		logger:   logging.NewComponentLogger(logger, "resolver"),
	}
}

// ByFragment resolves a fragment that carries a filename and/or title. A
// 24-character id in either field is fetched directly; otherwise a query is
// derived and searched. The outcome is returned alongside any error so
// callers can report how far resolution got.
func (r *Resolver) ByFragment(ctx context.Context, frag stash.Fragment) (*Outcome, error) {
	out := &Outcome{Method: "sceneByFragment"}
	if !frag.IsObject() {
		return out, services.Wrap(services.ErrInvalidInput, "resolve", "fragment", "fragment must be a JSON object", nil)
	}
	filename, title := frag.Filename(), frag.Title()
	out.Durations = LocalDurations(frag)
	logger := logging.WithContext(ctx, r.logger)

	if id := firstNonEmpty(SceneID(filename), SceneID(title)); id != "" {
		logger.Info("fragment carries catalog id", logging.String("video_id", id))
		return out, r.resolveByID(ctx, out, id)
	}

	source := firstNonEmpty(StorageKey(filename), StorageKey(title), title, filename)
	out.Query = BuildQuery(source)
	out.Tokens = ExtractTokens(filename)
	if out.Query == "" {
		return out, services.Wrap(services.ErrInvalidInput, "resolve", "query",
			"did not find a usable search query from fragment input", nil)
	}

	logger.Info("derived search query",
		logging.String("filename", filename),
		logging.String("title", title),
		logging.String("query_source", source),
		logging.String("query", out.Query),
		logging.Strings("tokens", out.Tokens),
		logging.Any("local_durations", out.Durations))
	return out, r.searchWithRetries(ctx, out)
}

// ByURL resolves a fragment that carries a scene URL. An id in the URL is
// fetched directly; otherwise the last path segment is searched as a slug.
func (r *Resolver) ByURL(ctx context.Context, frag stash.Fragment) (*Outcome, error) {
	out := &Outcome{Method: "sceneByURL"}
	if !frag.IsObject() {
		return out, services.Wrap(services.ErrInvalidInput, "resolve", "url", "fragment must be a JSON object", nil)
	}
	link := strings.TrimSpace(frag.URL())
	if link == "" {
		return out, services.Wrap(services.ErrInvalidInput, "resolve", "url", "fragment carries no url", nil)
	}
	logger := logging.WithContext(ctx, r.logger)

	if id := SceneID(link); id != "" {
		logger.Info("url carries catalog id", logging.String("url", link), logging.String("video_id", id))
		return out, r.resolveByID(ctx, out, id)
	}

	out.Query = BuildQuery(urlSlug(link))
	if out.Query == "" {
		return out, services.Wrap(services.ErrInvalidInput, "resolve", "url",
			fmt.Sprintf("did not find scene ID or slug from URL %q", link), nil)
	}
	logger.Info("derived search query from url slug",
		logging.String("url", link),
		logging.String("query", out.Query))
	return out, r.searchWithRetries(ctx, out)
}

func (r *Resolver) resolveByID(ctx context.Context, out *Outcome, id string) error {
	ctx = services.WithStage(ctx, "direct_fetch")
	video, err := r.fetchVideo(ctx, id)
	if err != nil {
		return err
	}
	out.Decision = DecisionDirectID
	out.Scene = r.builder.Scene(video)
	logging.WithContext(ctx, r.logger).Info("scene resolved", logging.Args(append(
		logging.DecisionAttrs("scene_resolution", string(DecisionDirectID), "catalog id present in input"),
		logging.String("video_id", id))...)...)
	return nil
}

// searchWithRetries issues up to SearchAttempts searches and stops at the
// first non-empty candidate list. Empty results are retried; any error ends
// resolution.
func (r *Resolver) searchWithRetries(ctx context.Context, out *Outcome) error {
	ctx = services.WithStage(ctx, "search")
	logger := logging.WithContext(ctx, r.logger)
	opts := catalog.SearchOptions{Limit: r.settings.SearchLimit, Page: r.settings.SearchPage}

	query := out.Query
	for attempt := 1; attempt <= r.settings.SearchAttempts; attempt++ {
		if attempt > 1 && r.settings.BroadenOnRetry {
			if trimmed := TrimQuery(query); trimmed != "" {
				query = trimmed
			}
		}
		out.Attempts = attempt
		resp, err := r.catalog.Search(ctx, query, opts)
		if err != nil {
			return err
		}
		candidates := catalog.Candidates(resp)
		logger.Info("search attempt finished",
			logging.Int("attempt", attempt),
			logging.String("query", query),
			logging.Int("candidates", len(candidates)))
		if len(candidates) > 0 {
			return r.handleSearchResults(ctx, out, candidates)
		}
	}
	return services.Wrap(services.ErrNoMatch, "resolve", "search",
		fmt.Sprintf("no search results for query %q after %d attempts", out.Query, r.settings.SearchAttempts), nil)
}

func (r *Resolver) handleSearchResults(ctx context.Context, out *Outcome, candidates []document.Value) error {
	ctx = services.WithStage(ctx, "score")
	logger := logging.WithContext(ctx, r.logger)

	filtered := prefilterByTokens(candidates, out.Tokens, r.settings.PrefilterThreshold)
	if r.settings.SummaryDurationFilter {
		filtered = filterBySummaryDuration(filtered, out.Durations, r.settings.DurationTolerance)
	}
	if len(filtered) > r.settings.DetailLimit {
		filtered = filtered[:r.settings.DetailLimit]
	}
	logger.Debug("candidates selected for detail fetch",
		logging.Int("returned", len(candidates)),
		logging.Int("fetching", len(filtered)))

	details := make([]document.Value, 0, len(filtered))
	for _, item := range filtered {
		id := catalog.VideoID(item)
		if id == "" {
			logging.WarnWithContext(logger, "search result has no id", "candidate_dropped",
				logging.String(logging.FieldImpact, "candidate skipped"))
			continue
		}
		video, err := r.fetchVideo(ctx, id)
		if err != nil {
			if !services.IsSoft(err) {
				return err
			}
			logging.WarnWithContext(logger, "candidate detail fetch failed", "candidate_dropped",
				logging.String("video_id", id),
				logging.Error(err),
				logging.String(logging.FieldImpact, "candidate skipped"))
			continue
		}
		details = append(details, video)
	}
	if len(details) == 0 {
		return services.Wrap(services.ErrNoMatch, "resolve", "details",
			fmt.Sprintf("no valid video details found from search results for query %q", out.Query), nil)
	}

	queryTitle := QueryTitle(out.Tokens)
	scored := make([]ScoredCandidate, 0, len(details))
	for idx, video := range details {
		sc := ScoreCandidate(video, queryTitle, out.Durations, r.settings.DurationTolerance)
		sc.Position = idx
		scored = append(scored, sc)
		logger.Debug("scored candidate",
			logging.Int("position", idx),
			logging.String("video_id", sc.ID),
			logging.String("title", sc.Title),
			logging.Float64("similarity", sc.Similarity),
			logging.Bool("duration_match", sc.DurationMatch),
			logging.Float64("score", sc.Score))
	}
	rankCandidates(scored)
	out.Ranked = scored

	r.decide(ctx, out)
	return nil
}

// decide commits to the top candidate when no local duration is known or it
// matches; else to the best duration-matching candidate; else shortlists.
func (r *Resolver) decide(ctx context.Context, out *Outcome) {
	logger := logging.WithContext(ctx, r.logger)
	best := out.Ranked[0]

	if len(out.Durations) == 0 || best.DurationMatch {
		reason := "top score matches local duration"
		if len(out.Durations) == 0 {
			reason = "no local duration to check"
		}
		out.Decision = DecisionBestMatch
		out.Scene = r.builder.Scene(best.Video)
		logger.Info("scene resolved", logging.Args(append(
			logging.DecisionAttrs("scene_resolution", string(out.Decision), reason),
			logging.String("video_id", best.ID),
			logging.Float64("score", best.Score))...)...)
		return
	}

	for _, sc := range out.Ranked[1:] {
		if sc.DurationMatch {
			out.Decision = DecisionDurationFallback
			out.Scene = r.builder.Scene(sc.Video)
			logger.Info("scene resolved", logging.Args(append(
				logging.DecisionAttrs("scene_resolution", string(out.Decision), "top score failed duration check"),
				logging.String("video_id", sc.ID),
				logging.Float64("score", sc.Score),
				logging.Float64("top_score", best.Score))...)...)
			return
		}
	}

	n := min(r.settings.ShortlistSize, len(out.Ranked))
	videos := make([]document.Value, 0, n)
	for _, sc := range out.Ranked[:n] {
		videos = append(videos, sc.Video)
	}
	out.Decision = DecisionShortlist
	out.Selection = r.builder.Selection(videos)
	logger.Info("returning shortlist", logging.Args(append(
		logging.DecisionAttrs("scene_resolution", string(out.Decision), "no candidate matches local duration"),
		logging.Int("options", len(out.Selection.Results)))...)...)
}

// fetchVideo returns the data.video record of a watch page.
func (r *Resolver) fetchVideo(ctx context.Context, id string) (document.Value, error) {
	resp, err := r.catalog.WatchPage(ctx, id)
	if err != nil {
		return document.Value{}, err
	}
	video, ok := catalog.Video(resp)
	if !ok {
		return document.Value{}, services.Wrap(services.ErrBadResponse, "resolve", "watch_page",
			fmt.Sprintf("video data not found in watch-page response for %s", id), nil)
	}
	return video, nil
}

// urlSlug returns the last path segment of a URL without its query string.
func urlSlug(link string) string {
	trimmed := strings.TrimRight(link, "/")
	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	slug, _, _ := strings.Cut(segment, "?")
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
