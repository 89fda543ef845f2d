package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driven"
)

// fakeDestination is an in-memory driven.Destination with scriptable
// failures, shared by the publisher and orchestrator tests.
type fakeDestination struct {
	mu sync.Mutex

	failUploads     map[string]bool // file names whose upload fails
	failCreate      map[string]bool // slugs whose entry creation fails
	failPublish     map[string]bool // entry IDs whose publish fails
	validateErr     error
	missingType     bool
	listErr         error
	overrideListing domain.AssetMap

	uploads        []domain.AssetRequest
	createdEntries []map[string]any
	publishedIDs   []string
}

var _ driven.Destination = (*fakeDestination)(nil)

func newFakeDestination() *fakeDestination {
	return &fakeDestination{
		failUploads: map[string]bool{},
		failCreate:  map[string]bool{},
		failPublish: map[string]bool{},
	}
}

func (f *fakeDestination) Validate(context.Context) error {
	return f.validateErr
}

func (f *fakeDestination) HasContentType(context.Context, string) (bool, error) {
	return !f.missingType, nil
}

func (f *fakeDestination) UploadAsset(_ context.Context, req domain.AssetRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUploads[req.FileName] {
		return "", errors.New("upload rejected")
	}
	f.uploads = append(f.uploads, req)
	return "asset-" + req.FileName, nil
}

func (f *fakeDestination) PublishedAssets(context.Context) (domain.AssetMap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.overrideListing != nil {
		return f.overrideListing, nil
	}
	assets := domain.AssetMap{}
	for _, req := range f.uploads {
		assets[req.FileName] = domain.AssetTarget{
			ID:  "asset-" + req.FileName,
			URL: "//assets.example.com/" + req.FileName,
		}
	}
	return assets, nil
}

func (f *fakeDestination) CreateEntry(_ context.Context, _ string, fields map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slug := localeValue(fields, "slug")
	if f.failCreate[slug] {
		return "", errors.New("create rejected")
	}
	f.createdEntries = append(f.createdEntries, fields)
	return "entry-" + slug, nil
}

func (f *fakeDestination) PublishEntry(_ context.Context, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPublish[entryID] {
		return errors.New("publish rejected")
	}
	f.publishedIDs = append(f.publishedIDs, entryID)
	return nil
}

// localeValue unwraps a locale-wrapped string field for assertions.
func localeValue(fields map[string]any, name string) string {
	wrapped, ok := fields[name].(map[string]any)
	if !ok {
		return ""
	}
	for _, v := range wrapped {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// fakeSource is an in-memory driven.SourceClient.
type fakeSource struct {
	pingErr    error
	posts      []domain.RawPost
	postsErr   error
	tags       []domain.RawTag
	tagsErr    error
	categories []domain.RawCategory
	media      []domain.RawMedia
	mediaErr   error
}

var _ driven.SourceClient = (*fakeSource)(nil)

func (f *fakeSource) Ping(context.Context) error { return f.pingErr }

func (f *fakeSource) Posts(_ context.Context, maxItems int) ([]domain.RawPost, error) {
	return capSlice(f.posts, maxItems), f.postsErr
}

func (f *fakeSource) Tags(_ context.Context, maxItems int) ([]domain.RawTag, error) {
	return capSlice(f.tags, maxItems), f.tagsErr
}

func (f *fakeSource) Categories(_ context.Context, maxItems int) ([]domain.RawCategory, error) {
	return capSlice(f.categories, maxItems), nil
}

func (f *fakeSource) Media(_ context.Context, maxItems int) ([]domain.RawMedia, error) {
	return capSlice(f.media, maxItems), f.mediaErr
}

// fakeLedger records ledger calls in memory.
type fakeLedger struct {
	mu       sync.Mutex
	begun    []domain.RunInfo
	items    []domain.ItemResult
	finished []domain.RunSummary
}

var _ driven.RunLedger = (*fakeLedger)(nil)

func (f *fakeLedger) BeginRun(_ context.Context, run domain.RunInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.begun = append(f.begun, run)
	return nil
}

func (f *fakeLedger) RecordItem(_ context.Context, item domain.ItemResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, item)
	return nil
}

func (f *fakeLedger) FinishRun(_ context.Context, summary domain.RunSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = append(f.finished, summary)
	return nil
}

func (f *fakeLedger) Close() error { return nil }

func capSlice[T any](items []T, maxItems int) []T {
	if maxItems >= 0 && len(items) > maxItems {
		return items[:maxItems]
	}
	return items
}

// testPost builds a minimal raw post.
func testPost(id int, slug string, tags, categories []int, featuredMedia int, body string) domain.RawPost {
	return domain.RawPost{
		ID:            id,
		Type:          "post",
		Slug:          slug,
		DateGMT:       "2024-03-01T10:00:00",
		Title:         domain.RenderedText{Rendered: fmt.Sprintf("Post %d", id)},
		Content:       domain.RenderedText{Rendered: body},
		FeaturedMedia: featuredMedia,
		Tags:          tags,
		Categories:    categories,
	}
}
