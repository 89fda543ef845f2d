package domain

import "time"

// Item kinds recorded in the run ledger.
const (
	ItemAsset = "asset"
	ItemEntry = "entry"
)

// Item statuses recorded in the run ledger.
const (
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// RunInfo identifies one migration run.
type RunInfo struct {
	ID        string
	StartedAt time.Time
}

// ItemResult is the outcome of one asset upload or entry publish.
type ItemResult struct {
	RunID         string
	Kind          string // ItemAsset or ItemEntry
	SourceKey     string // file name for assets, slug for entries
	DestinationID string // empty on failure
	Status        string // StatusPublished or StatusFailed
	Error         string // empty on success
}

// Published reports whether the item reached the destination.
func (r ItemResult) Published() bool {
	return r.Status == StatusPublished
}

// RunSummary aggregates one finished run.
type RunSummary struct {
	RunID           string
	FinishedAt      time.Time
	PostsFetched    int
	AssetsPublished int
	AssetsFailed    int
	EntriesCreated  int
	EntriesFailed   int
}
