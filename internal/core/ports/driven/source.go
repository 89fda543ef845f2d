package driven

import (
	"context"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// SourceClient fetches raw records from the source content API.
//
// Every fetch method is bounded: it paginates transparently up to
// maxItems and tolerates partial failure. A page error mid-way returns
// whatever accumulated so far together with a nil error; only a fetch
// that yields nothing at all returns an error.
type SourceClient interface {
	// Ping checks that the source API is reachable.
	Ping(ctx context.Context) error

	// Posts fetches up to maxItems posts.
	Posts(ctx context.Context, maxItems int) ([]domain.RawPost, error)

	// Tags fetches up to maxItems tags.
	Tags(ctx context.Context, maxItems int) ([]domain.RawTag, error)

	// Categories fetches up to maxItems categories.
	Categories(ctx context.Context, maxItems int) ([]domain.RawCategory, error)

	// Media fetches up to maxItems media records.
	Media(ctx context.Context, maxItems int) ([]domain.RawMedia, error)
}
