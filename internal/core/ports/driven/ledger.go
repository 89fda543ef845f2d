package driven

import (
	"context"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// RunLedger persists migration run results for post-run inspection.
// It is write-only during a run; nothing is read back (resumable runs
// are out of scope).
type RunLedger interface {
	// BeginRun records the start of a run.
	BeginRun(ctx context.Context, run domain.RunInfo) error

	// RecordItem records the outcome of one asset or entry.
	RecordItem(ctx context.Context, item domain.ItemResult) error

	// FinishRun records the final summary of a run.
	FinishRun(ctx context.Context, summary domain.RunSummary) error

	// Close releases the underlying storage.
	Close() error
}
