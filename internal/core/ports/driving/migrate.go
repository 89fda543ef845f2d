package driving

import "context"

// Migrator runs the migration pipeline end to end.
type Migrator interface {
	// Preflight verifies source reachability, destination credentials,
	// and the presence of the target content type, without migrating
	// anything. Returns one CheckResult per check performed.
	Preflight(ctx context.Context) []CheckResult

	// Run executes the full pipeline: fetch, normalise, snapshot,
	// publish assets, publish entries. Per-item publish failures do not
	// fail the run; they are reflected in the report. A non-nil error
	// means the run as a whole was meaningless (bad credentials,
	// unreachable APIs, missing content type).
	Run(ctx context.Context) (*RunReport, error)
}

// CheckResult is the outcome of one preflight check.
type CheckResult struct {
	Name string
	Err  error
}

// OK reports whether the check passed.
func (c CheckResult) OK() bool { return c.Err == nil }

// RunReport summarises one completed migration run.
type RunReport struct {
	RunID           string
	PostsFetched    int
	PostsNormalized int
	AssetsPublished int
	AssetsFailed    int
	EntriesCreated  int
	EntriesFailed   int
	SnapshotPath    string
}
