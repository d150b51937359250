package catalog

import "pmvhaven/internal/document"

var candidatePaths = [][]string{
	{"videos"},
	{"results"},
	{"data"},
	{"data", "videos"},
	{"data", "results"},
}

// Candidates locates the result list inside a search response. Missing or
// non-list members yield an empty slice.
func Candidates(resp document.Value) []document.Value {
	found, ok := resp.Lookup(func(v document.Value) bool { return v.IsArray() }, candidatePaths...)
	if !ok {
		return nil
	}
	return found.Items()
}

// VideoID returns the first present identifier of a search or detail record.
func VideoID(item document.Value) string {
	for _, key := range []string{"_id", "id", "videoId"} {
		if id, ok := item.Get(key).Scalar(); ok && id != "" {
			return id
		}
	}
	return ""
}

// Video extracts the detail record from a watch-page response.
func Video(resp document.Value) (document.Value, bool) {
	video := resp.Path("data", "video")
	if !video.IsObject() {
		return document.Value{}, false
	}
	return video, true
}
