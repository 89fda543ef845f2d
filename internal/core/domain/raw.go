package domain

// RenderedText is the WordPress "rendered" wrapper around HTML strings.
type RenderedText struct {
	Rendered string `json:"rendered"`
}

// RawPost is a post record as returned by the WordPress REST API.
// Only the fields the pipeline consumes are declared; everything else
// in the response is ignored.
type RawPost struct {
	ID            int          `json:"id"`
	Type          string       `json:"type"`
	Slug          string       `json:"slug"`
	DateGMT       string       `json:"date_gmt"`
	Title         RenderedText `json:"title"`
	Content       RenderedText `json:"content"`
	FeaturedMedia int          `json:"featured_media"`
	Tags          []int        `json:"tags"`
	Categories    []int        `json:"categories"`
}

// RawTag is a tag record from the source API.
type RawTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RawCategory is a category record from the source API.
type RawCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RawMedia is a media (attachment) record from the source API.
type RawMedia struct {
	ID        int          `json:"id"`
	SourceURL string       `json:"source_url"`
	AltText   string       `json:"alt_text"`
	Title     RenderedText `json:"title"`
}
