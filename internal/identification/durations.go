package identification

import (
	"math"

	"pmvhaven/internal/document"
	"pmvhaven/internal/stash"
)

var candidateDurationKeys = []string{"duration", "durationSeconds", "length", "runtime", "runTime", "time"}

// LocalDurations collects the distinct durations, in seconds, that a fragment
// reports for its file. Sources are the top-level duration, scene.duration,
// fingerprint durations (nested under scene or at the top level), and
// attached file durations. Values that do not coerce to a finite number are
// skipped; order of first appearance is kept.
func LocalDurations(frag stash.Fragment) []float64 {
	raw := frag.Raw()
	scene := raw.Get("scene")

	sources := []document.Value{raw.Get("duration"), scene.Get("duration")}
	for _, fp := range scene.Get("fingerprints").Items() {
		sources = append(sources, fp.Get("duration"))
	}
	for _, fp := range raw.Get("fingerprints").Items() {
		sources = append(sources, fp.Get("duration"))
	}
	for _, file := range raw.Get("files").Items() {
		sources = append(sources, file.Get("duration"))
	}

	var out []float64
	seen := make(map[float64]struct{}, len(sources))
	for _, v := range sources {
		d, ok := finiteFloat(v)
		if !ok {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// CandidateDuration returns the first coercible duration field of a catalog
// record.
func CandidateDuration(video document.Value) (float64, bool) {
	for _, key := range candidateDurationKeys {
		if d, ok := finiteFloat(video.Get(key)); ok {
			return d, true
		}
	}
	return 0, false
}

// DurationMatches reports whether a candidate duration lies within tolerance
// seconds (inclusive) of any local duration.
func DurationMatches(candidate float64, ok bool, locals []float64, tolerance float64) bool {
	if !ok {
		return false
	}
	for _, local := range locals {
		if math.Abs(candidate-local) <= tolerance {
			return true
		}
	}
	return false
}

func finiteFloat(v document.Value) (float64, bool) {
	f, ok := v.Float()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
