package identification

import (
	"sort"
	"strings"

	"pmvhaven/internal/catalog"
	"pmvhaven/internal/document"
	"pmvhaven/internal/textutil"
)

const (
	titleWeight   = 100.0
	durationBonus = 50.0
)

// ScoredCandidate is one fetched detail record with its score breakdown.
type ScoredCandidate struct {
	Video document.Value
	ID    string
	Title string
	// Position is the candidate's index in fetch order.
	Position      int
	Similarity    float64
	Duration      float64
	HasDuration   bool
	DurationMatch bool
	Score         float64
}

// ScoreCandidate computes
//
//	100 * similarity(queryTitle, title) + 50 if the duration matches
//
// where similarity is the case-insensitive matching-block ratio and is 0 when
// either side is empty.
func ScoreCandidate(video document.Value, queryTitle string, locals []float64, tolerance float64) ScoredCandidate {
	title := video.Get("title").Text()
	duration, hasDuration := CandidateDuration(video)

	sc := ScoredCandidate{
		Video:       video,
		ID:          catalog.VideoID(video),
		Title:       title,
		Similarity:  textutil.TitleSimilarity(queryTitle, title),
		Duration:    duration,
		HasDuration: hasDuration,
	}
	sc.DurationMatch = DurationMatches(duration, hasDuration, locals, tolerance)
	sc.Score = titleWeight * sc.Similarity
	if sc.DurationMatch {
		sc.Score += durationBonus
	}
	return sc
}

// QueryTitle is the comparison text for scoring: the filename tokens joined
// by spaces.
func QueryTitle(tokens []string) string {
	return strings.Join(tokens, " ")
}

// rankCandidates orders by descending score; ties keep fetch order.
func rankCandidates(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

// prefilterByTokens keeps candidates mentioning any token once the result set
// exceeds threshold. An empty filtered set falls back to all candidates.
func prefilterByTokens(candidates []document.Value, tokens []string, threshold int) []document.Value {
	if len(candidates) <= threshold || len(tokens) == 0 {
		return candidates
	}
	var kept []document.Value
	for _, item := range candidates {
		if item.ContainsAny(tokens) {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

// filterBySummaryDuration narrows candidates using durations already present
// in search results: matching ones if any, else those reporting no duration,
// else everything.
func filterBySummaryDuration(candidates []document.Value, locals []float64, tolerance float64) []document.Value {
	if len(locals) == 0 {
		return candidates
	}
	var matched, unknown []document.Value
	for _, item := range candidates {
		d, ok := CandidateDuration(item)
		switch {
		case !ok:
			unknown = append(unknown, item)
		case DurationMatches(d, ok, locals, tolerance):
			matched = append(matched, item)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	if len(unknown) > 0 {
		return unknown
	}
	return candidates
}
