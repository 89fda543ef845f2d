package services

import (
	"context"
	"strings"
	"sync"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driven"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/logger"
)

// labelDelimiter joins tag and category names into a single field.
const labelDelimiter = ", "

// EntryPublisher builds one destination entry per normalised post and
// publishes them with the same bounded-worker, per-item-isolated
// discipline as the asset stage.
type EntryPublisher struct {
	dest          driven.Destination
	contentTypeID string
	locale        string
	mode          domain.ConvertMode
	workers       int
}

// NewEntryPublisher creates an entry publisher.
func NewEntryPublisher(dest driven.Destination, contentTypeID, locale string, mode domain.ConvertMode, workers int) *EntryPublisher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &EntryPublisher{
		dest:          dest,
		contentTypeID: contentTypeID,
		locale:        locale,
		mode:          mode,
		workers:       workers,
	}
}

// Publish creates and publishes one entry per post. Failures are
// isolated per entry; the returned results always cover every post.
func (p *EntryPublisher) Publish(ctx context.Context, posts []domain.NormalizedPost, assets domain.AssetMap) []domain.ItemResult {
	logger.Section("Publishing entries")
	logger.Info("publishing %d entries with %d workers", len(posts), p.workers)

	results := make([]domain.ItemResult, len(posts))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, post := range posts {
		wg.Add(1)
		go func(i int, post domain.NormalizedPost) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = p.publishOne(ctx, post, assets)
		}(i, post)
	}
	wg.Wait()

	return results
}

// publishOne creates and publishes a single entry, converting any
// failure into a failed ItemResult.
func (p *EntryPublisher) publishOne(ctx context.Context, post domain.NormalizedPost, assets domain.AssetMap) domain.ItemResult {
	result := domain.ItemResult{
		Kind:      domain.ItemEntry,
		SourceKey: post.Slug,
	}

	content := Convert(post.Content, p.mode, assets)
	fields := BuildEntryFields(post, content, assets, p.locale)

	id, err := p.dest.CreateEntry(ctx, p.contentTypeID, fields)
	if err != nil {
		logger.Warn("entry %s: create failed: %v", post.Slug, err)
		result.Status = domain.StatusFailed
		result.Error = err.Error()
		return result
	}

	if err := p.dest.PublishEntry(ctx, id); err != nil {
		logger.Warn("entry %s: publish failed: %v", post.Slug, err)
		result.Status = domain.StatusFailed
		result.DestinationID = id
		result.Error = err.Error()
		return result
	}

	logger.Debug("entry %s published as %s", post.Slug, id)
	result.Status = domain.StatusPublished
	result.DestinationID = id
	return result
}

// entryContext carries the per-post derived values the field mapping
// table draws from.
type entryContext struct {
	content domain.ConvertedContent
	assets  domain.AssetMap
}

// fieldMapping declares how one destination field is built from a
// normalised post. The table below is evaluated in order; includeIf
// gates optional fields.
type fieldMapping struct {
	destination string
	includeIf   func(post domain.NormalizedPost, ec entryContext) bool
	value       func(post domain.NormalizedPost, ec entryContext) any
}

// entryFieldMap is the static mapping from NormalizedPost to the
// destination entry schema. SourceID, SourceType, and Images exist
// only to drive the pipeline and are deliberately absent.
var entryFieldMap = []fieldMapping{
	{
		destination: "title",
		value:       func(p domain.NormalizedPost, _ entryContext) any { return p.Title },
	},
	{
		destination: "slug",
		value:       func(p domain.NormalizedPost, _ entryContext) any { return p.Slug },
	},
	{
		destination: "content",
		value:       func(_ domain.NormalizedPost, ec entryContext) any { return ec.content.FieldValue() },
	},
	{
		destination: "publishDate",
		includeIf:   func(p domain.NormalizedPost, _ entryContext) bool { return p.PublishDate != "" },
		value:       func(p domain.NormalizedPost, _ entryContext) any { return p.PublishDate },
	},
	{
		destination: "tags",
		value:       func(p domain.NormalizedPost, _ entryContext) any { return strings.Join(p.TagNames, labelDelimiter) },
	},
	{
		destination: "categories",
		value: func(p domain.NormalizedPost, _ entryContext) any {
			return strings.Join(p.CategoryNames, labelDelimiter)
		},
	},
	{
		// The destination schema rejects a zero or empty link, so the
		// field is omitted entirely when the post has no resolvable
		// featured image.
		destination: "featuredImage",
		includeIf: func(p domain.NormalizedPost, ec entryContext) bool {
			if p.FeaturedImage == nil {
				return false
			}
			_, ok := ec.assets.Resolve(p.FeaturedImage.FileName())
			return ok
		},
		value: func(p domain.NormalizedPost, ec entryContext) any {
			target, _ := ec.assets.Resolve(p.FeaturedImage.FileName())
			return assetLink(target.ID)
		},
	},
}

// BuildEntryFields evaluates the field mapping table for one post and
// wraps every value in the destination locale.
func BuildEntryFields(post domain.NormalizedPost, content domain.ConvertedContent, assets domain.AssetMap, locale string) map[string]any {
	ec := entryContext{content: content, assets: assets}

	fields := make(map[string]any, len(entryFieldMap))
	for _, mapping := range entryFieldMap {
		if mapping.includeIf != nil && !mapping.includeIf(post, ec) {
			continue
		}
		fields[mapping.destination] = map[string]any{locale: mapping.value(post, ec)}
	}
	return fields
}

// assetLink builds a typed destination link to a published asset.
func assetLink(assetID string) map[string]any {
	return map[string]any{
		"sys": map[string]any{
			"type":     "Link",
			"linkType": "Asset",
			"id":       assetID,
		},
	}
}
