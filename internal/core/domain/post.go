package domain

import (
	"net/url"
	"path"
	"strings"
)

// ImageReference is one image found during normalisation: either the
// post's featured media or an <img> tag in the rendered body.
type ImageReference struct {
	SourceURL   string `json:"sourceUrl"`
	AltText     string `json:"altText"`
	Title       string `json:"title"`
	OwnerPostID int    `json:"ownerPostId"`
	Featured    bool   `json:"isFeatured"`
}

// FileName derives the asset uniqueness key from the source URL: its
// final path segment, query string excluded. Two images sharing a file
// name are treated as the same asset.
func (r ImageReference) FileName() string {
	return FileNameFromURL(r.SourceURL)
}

// FileNameFromURL returns the final path segment of a URL.
// Returns "" when the URL is unparseable or has no path.
func FileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Fall back to a plain string split
		rawURL = strings.SplitN(rawURL, "?", 2)[0]
		if i := strings.LastIndex(rawURL, "/"); i >= 0 {
			return rawURL[i+1:]
		}
		return rawURL
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// NormalizedPost is the canonical pipeline representation of a source
// post after reference resolution. It is created once by the normaliser
// and treated as immutable by every later stage.
type NormalizedPost struct {
	SourceID      int             `json:"sourceId"`
	SourceType    string          `json:"sourceType"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Content       string          `json:"content"` // raw rendered HTML
	PublishDate   string          `json:"publishDate"`
	FeaturedImage *ImageReference `json:"featuredImage,omitempty"`
	TagNames      []string        `json:"tags"`
	CategoryNames []string        `json:"categories"`

	// Images holds the featured image first (when resolved), then body
	// images in document order. Later stages depend on this ordering.
	Images []ImageReference `json:"images"`
}
