package services

import (
	"fmt"
	"regexp"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/logger"
)

// Pre-compiled regular expressions for image extraction.
var (
	imgTag    = regexp.MustCompile(`(?is)<img[^>]*>`)
	srcAttr   = regexp.MustCompile(`(?is)\bsrc\s*=\s*"([^"]*)"`)
	altAttr   = regexp.MustCompile(`(?is)\balt\s*=\s*"([^"]*)"`)
	titleAttr = regexp.MustCompile(`(?is)\btitle\s*=\s*"([^"]*)"`)
)

// NormalizePost converts one raw source post into the canonical
// NormalizedPost. It never fails: unresolvable tag, category, and
// featured-media references are skipped with a diagnostic, and the
// remainder of the post is produced best-effort.
func NormalizePost(raw domain.RawPost, index *ResourceIndex) domain.NormalizedPost {
	post := domain.NormalizedPost{
		SourceID:      raw.ID,
		SourceType:    raw.Type,
		Title:         raw.Title.Rendered,
		Slug:          raw.Slug,
		Content:       raw.Content.Rendered,
		PublishDate:   raw.DateGMT,
		TagNames:      resolveTagNames(raw, index),
		CategoryNames: resolveCategoryNames(raw, index),
	}

	// Featured image first (when resolvable), then body images in
	// document order. Later stages rely on this ordering.
	if ref, ok := resolveFeaturedImage(raw, index); ok {
		post.FeaturedImage = &ref
		post.Images = append(post.Images, ref)
	}
	post.Images = append(post.Images, extractBodyImages(raw)...)

	return post
}

// resolveTagNames resolves tag IDs to names, preserving source order.
// IDs that fail to resolve are skipped; no placeholder is inserted.
func resolveTagNames(raw domain.RawPost, index *ResourceIndex) []string {
	names := make([]string, 0, len(raw.Tags))
	for _, id := range raw.Tags {
		tag, ok := index.Tag(id)
		if !ok {
			logger.Warn("post %d: tag %d not found in fetched tags, skipping", raw.ID, id)
			continue
		}
		names = append(names, tag.Name)
	}
	return names
}

// resolveCategoryNames resolves category IDs to names, preserving
// source order and skipping unresolved IDs.
func resolveCategoryNames(raw domain.RawPost, index *ResourceIndex) []string {
	names := make([]string, 0, len(raw.Categories))
	for _, id := range raw.Categories {
		cat, ok := index.Category(id)
		if !ok {
			logger.Warn("post %d: category %d not found in fetched categories, skipping", raw.ID, id)
			continue
		}
		names = append(names, cat.Name)
	}
	return names
}

// resolveFeaturedImage resolves the featured media ID via the media
// index. A zero ID means the post has no featured image. An ID that
// fails to resolve is dropped with a diagnostic, never fabricated.
func resolveFeaturedImage(raw domain.RawPost, index *ResourceIndex) (domain.ImageReference, bool) {
	if raw.FeaturedMedia <= 0 {
		return domain.ImageReference{}, false
	}

	media, ok := index.Media(raw.FeaturedMedia)
	if !ok {
		logger.Warn("post %d: featured media %d not found in fetched media, skipping", raw.ID, raw.FeaturedMedia)
		return domain.ImageReference{}, false
	}

	alt := media.AltText
	if alt == "" {
		alt = defaultAltText(raw.ID)
	}
	return domain.ImageReference{
		SourceURL:   media.SourceURL,
		AltText:     alt,
		Title:       media.Title.Rendered,
		OwnerPostID: raw.ID,
		Featured:    true,
	}, true
}

// extractBodyImages scans the rendered HTML body for <img> tags in
// document order, capturing src and, when present, the first alt and
// title attribute values within each tag.
func extractBodyImages(raw domain.RawPost) []domain.ImageReference {
	var refs []domain.ImageReference
	for _, tag := range imgTag.FindAllString(raw.Content.Rendered, -1) {
		src := firstSubmatch(srcAttr, tag)
		if src == "" {
			continue
		}

		alt := firstSubmatch(altAttr, tag)
		if alt == "" {
			alt = defaultAltText(raw.ID)
		}
		refs = append(refs, domain.ImageReference{
			SourceURL:   src,
			AltText:     alt,
			Title:       firstSubmatch(titleAttr, tag),
			OwnerPostID: raw.ID,
			Featured:    false,
		})
	}
	return refs
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func defaultAltText(postID int) string {
	return fmt.Sprintf("Image from post %d", postID)
}
