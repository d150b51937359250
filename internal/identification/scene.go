package identification

import (
	"fmt"
	"strings"

	"pmvhaven/internal/catalog"
	"pmvhaven/internal/document"
	"pmvhaven/internal/stash"
	"pmvhaven/internal/textutil"
)

var studioURLKeys = []string{"creatorUrl", "creatorURL", "creatorPage", "creatorLink"}

// SceneBuilder maps catalog detail records onto Stash output records.
type SceneBuilder struct {
	// SiteURL is the public site root used for canonical links.
	SiteURL string
}

// Scene builds a resolved scene from a watch-page video record.
func (b SceneBuilder) Scene(video document.Value) *stash.Scene {
	title := video.Get("title").Text()
	scene := &stash.Scene{
		Title:      title,
		URL:        b.SceneURL(title, catalog.VideoID(video)),
		Image:      pickImage(video),
		Date:       datePart(video.FirstText("uploadDate", "isoDate")),
		Performers: stash.NamesOf(normalizeNames(video.Get("starsTags"))),
		Tags:       stash.NamesOf(normalizeNames(video.Get("tags"))),
		Details:    video.Get("description").Text(),
	}

	name := studioName(video.Get("creator"))
	url := studioURL(video)
	if name != "" || url != "" {
		scene.Studio = &stash.Studio{Name: name, URL: url}
	}
	return scene
}

// Selection builds the shortlist shown when no candidate is confident.
func (b SceneBuilder) Selection(videos []document.Value) *stash.SelectionOptions {
	out := &stash.SelectionOptions{Results: make([]stash.SelectionOption, 0, len(videos))}
	for _, video := range videos {
		if !video.IsObject() {
			continue
		}
		id := catalog.VideoID(video)
		title := video.Get("title").Text()
		link := ""
		if slug := textutil.Slugify(title); slug != "" && id != "" {
			link = fmt.Sprintf("%s/video/%s_%s", b.SiteURL, slug, id)
		}
		out.Results = append(out.Results, stash.SelectionOption{
			Title:     title,
			ID:        id,
			URL:       link,
			Thumbnail: pickImage(video),
		})
	}
	return out
}

// SceneURL returns {site}/video/{slug}_{id}, or {site}/video/{id} when the
// title slugifies to nothing.
func (b SceneBuilder) SceneURL(title, id string) string {
	if slug := textutil.Slugify(title); slug != "" && id != "" {
		return fmt.Sprintf("%s/video/%s_%s", b.SiteURL, slug, id)
	}
	return fmt.Sprintf("%s/video/%s", b.SiteURL, id)
}

func pickImage(video document.Value) string {
	if thumb := video.Get("thumbnailUrl").Text(); thumb != "" {
		return thumb
	}
	for _, item := range video.Get("thumbnails").Items() {
		if s, ok := item.Str(); ok {
			return s
		}
	}
	return ""
}

func datePart(value string) string {
	date, _, _ := strings.Cut(value, "T")
	return date
}

// normalizeNames accepts a list of names or a comma-separated string and
// drops blank entries.
func normalizeNames(value document.Value) []string {
	var names []string
	if s, ok := value.Str(); ok {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
		return names
	}
	for _, item := range value.Items() {
		if s, ok := item.Str(); ok && strings.TrimSpace(s) != "" {
			names = append(names, s)
		}
	}
	return names
}

func studioName(creator document.Value) string {
	if creator.IsArray() {
		items := creator.Items()
		if len(items) == 0 {
			return ""
		}
		creator = items[0]
	}
	name, _ := creator.Scalar()
	return name
}

func studioURL(video document.Value) string {
	for _, key := range studioURLKeys {
		if s, ok := video.Get(key).Str(); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
