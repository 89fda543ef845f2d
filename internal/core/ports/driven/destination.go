package driven

import (
	"context"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// Destination is the structured-content store the pipeline publishes to.
//
// Implementations own transport mechanics: authentication, rate
// limiting, and the create/process/publish lifecycle of assets. The
// services layer owns sequencing, concurrency, and failure isolation.
type Destination interface {
	// Validate checks credentials and resolves the configured space and
	// environment. Called before any migration work starts.
	Validate(ctx context.Context) error

	// HasContentType reports whether the environment defines the given
	// content type.
	HasContentType(ctx context.Context, contentTypeID string) (bool, error)

	// UploadAsset runs the full asset lifecycle: create from the source
	// URL, process for all locales, publish. Returns the asset ID.
	UploadAsset(ctx context.Context, req domain.AssetRequest) (string, error)

	// PublishedAssets lists every published asset in the environment,
	// keyed by file name. This is the authoritative mapping used to
	// link entries; upload responses are not trusted for it.
	PublishedAssets(ctx context.Context) (domain.AssetMap, error)

	// CreateEntry creates a draft entry of the named content type.
	// Fields are locale-wrapped destination fields. Returns the entry ID.
	CreateEntry(ctx context.Context, contentTypeID string, fields map[string]any) (string, error)

	// PublishEntry publishes a previously created entry.
	PublishEntry(ctx context.Context, entryID string) error
}
