package services

import (
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// ResourceIndex is the in-memory lookup over fetched auxiliary
// collections, keyed by source numeric ID. It is built once per run
// and read-only afterwards. A lookup miss is not an error; callers
// omit the reference and emit a diagnostic.
type ResourceIndex struct {
	tags       map[int]domain.RawTag
	categories map[int]domain.RawCategory
	media      map[int]domain.RawMedia
}

// NewResourceIndex builds the index from fetched collections.
func NewResourceIndex(tags []domain.RawTag, categories []domain.RawCategory, media []domain.RawMedia) *ResourceIndex {
	idx := &ResourceIndex{
		tags:       make(map[int]domain.RawTag, len(tags)),
		categories: make(map[int]domain.RawCategory, len(categories)),
		media:      make(map[int]domain.RawMedia, len(media)),
	}
	for _, t := range tags {
		idx.tags[t.ID] = t
	}
	for _, c := range categories {
		idx.categories[c.ID] = c
	}
	for _, m := range media {
		idx.media[m.ID] = m
	}
	return idx
}

// Tag looks up a tag by source ID.
func (i *ResourceIndex) Tag(id int) (domain.RawTag, bool) {
	t, ok := i.tags[id]
	return t, ok
}

// Category looks up a category by source ID.
func (i *ResourceIndex) Category(id int) (domain.RawCategory, bool) {
	c, ok := i.categories[id]
	return c, ok
}

// Media looks up a media record by source ID.
func (i *ResourceIndex) Media(id int) (domain.RawMedia, bool) {
	m, ok := i.media[id]
	return m, ok
}
