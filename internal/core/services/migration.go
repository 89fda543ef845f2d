package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driven"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driving"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/logger"
)

// Ensure Migrator implements the interface.
var _ driving.Migrator = (*Migrator)(nil)

// Options configures one migration run.
type Options struct {
	// MaxPosts, MaxTags, MaxCategories, MaxMedia bound how many records
	// are fetched per resource kind.
	MaxPosts      int
	MaxTags       int
	MaxCategories int
	MaxMedia      int

	// Mode selects flat or structured content conversion.
	Mode domain.ConvertMode

	// ContentTypeID is the destination content type entries are created as.
	ContentTypeID string

	// Locale is the destination locale fields are written under.
	Locale string

	// SnapshotPath is where the normalised post dump is written.
	SnapshotPath string

	// Workers bounds per-stage publish concurrency.
	Workers int
}

// Migrator coordinates the pipeline: preflight, fetch, normalise,
// snapshot, publish assets, publish entries, summary. Stage outputs
// are threaded explicitly; there is no shared mutable run state.
type Migrator struct {
	source driven.SourceClient
	dest   driven.Destination
	ledger driven.RunLedger // optional, may be nil
	opts   Options
}

// NewMigrator creates a migrator. ledger may be nil, in which case no
// run results are persisted.
func NewMigrator(source driven.SourceClient, dest driven.Destination, ledger driven.RunLedger, opts Options) *Migrator {
	return &Migrator{source: source, dest: dest, ledger: ledger, opts: opts}
}

// Preflight verifies both collaborators before any migration work.
func (m *Migrator) Preflight(ctx context.Context) []driving.CheckResult {
	checks := []driving.CheckResult{
		{Name: "source reachable", Err: m.source.Ping(ctx)},
		{Name: "destination credentials and environment", Err: m.dest.Validate(ctx)},
	}

	ok, err := m.dest.HasContentType(ctx, m.opts.ContentTypeID)
	if err == nil && !ok {
		err = fmt.Errorf("%w: %s", domain.ErrMissingContentType, m.opts.ContentTypeID)
	}
	checks = append(checks, driving.CheckResult{Name: "target content type", Err: err})

	return checks
}

// Run executes the full pipeline.
func (m *Migrator) Run(ctx context.Context) (*driving.RunReport, error) {
	run := domain.RunInfo{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	report := &driving.RunReport{RunID: run.ID}

	// 1. Preflight: only conditions that make the whole run meaningless
	// abort here; everything later degrades per record.
	logger.Section("Preflight")
	for _, check := range m.Preflight(ctx) {
		if !check.OK() {
			return nil, fmt.Errorf("preflight %s: %w", check.Name, check.Err)
		}
		logger.Info("preflight ok: %s", check.Name)
	}

	// 2. Fetch. Posts failing entirely is fatal; an auxiliary
	// collection failing only degrades reference resolution.
	logger.Section("Fetching source content")
	posts, err := m.source.Posts(ctx, m.opts.MaxPosts)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	report.PostsFetched = len(posts)
	if len(posts) == 0 {
		logger.Info("source returned zero posts")
		return report, nil
	}

	tags, err := m.source.Tags(ctx, m.opts.MaxTags)
	if err != nil {
		logger.Warn("fetching tags failed, tag names will not resolve: %v", err)
	}
	categories, err := m.source.Categories(ctx, m.opts.MaxCategories)
	if err != nil {
		logger.Warn("fetching categories failed, category names will not resolve: %v", err)
	}
	media, err := m.source.Media(ctx, m.opts.MaxMedia)
	if err != nil {
		logger.Warn("fetching media failed, featured images will not resolve: %v", err)
	}

	// 3. Normalise.
	logger.Section("Normalising posts")
	index := NewResourceIndex(tags, categories, media)
	normalized := make([]domain.NormalizedPost, 0, len(posts))
	for _, raw := range posts {
		normalized = append(normalized, NormalizePost(raw, index))
	}
	report.PostsNormalized = len(normalized)

	// 4. Snapshot before publishing; failure is diagnostic only.
	if m.opts.SnapshotPath != "" {
		if err := WriteSnapshot(m.opts.SnapshotPath, run.ID, normalized); err != nil {
			logger.Warn("writing snapshot failed: %v", err)
		} else {
			report.SnapshotPath = m.opts.SnapshotPath
			logger.Info("snapshot written to %s", m.opts.SnapshotPath)
		}
	}

	m.beginRun(ctx, run)

	// 5. Assets, then entries: the asset map is finalised at the stage
	// boundary and read-only afterwards.
	assetResults, assetMap := NewAssetPublisher(m.dest, m.opts.Workers).Publish(ctx, normalized)
	for _, r := range assetResults {
		m.recordItem(ctx, run.ID, r)
		if r.Published() {
			report.AssetsPublished++
		} else {
			report.AssetsFailed++
		}
	}

	entryResults := NewEntryPublisher(m.dest, m.opts.ContentTypeID, m.opts.Locale, m.opts.Mode, m.opts.Workers).
		Publish(ctx, normalized, assetMap)
	for _, r := range entryResults {
		m.recordItem(ctx, run.ID, r)
		if r.Published() {
			report.EntriesCreated++
		} else {
			report.EntriesFailed++
		}
	}

	m.finishRun(ctx, run.ID, report)

	logger.Section("Summary")
	logger.Info("run %s: %d posts, %d/%d assets, %d/%d entries",
		run.ID, report.PostsFetched,
		report.AssetsPublished, report.AssetsPublished+report.AssetsFailed,
		report.EntriesCreated, report.EntriesCreated+report.EntriesFailed)

	return report, nil
}

func (m *Migrator) beginRun(ctx context.Context, run domain.RunInfo) {
	if m.ledger == nil {
		return
	}
	if err := m.ledger.BeginRun(ctx, run); err != nil {
		logger.Warn("ledger: begin run failed: %v", err)
	}
}

func (m *Migrator) recordItem(ctx context.Context, runID string, item domain.ItemResult) {
	if m.ledger == nil {
		return
	}
	item.RunID = runID
	if err := m.ledger.RecordItem(ctx, item); err != nil {
		logger.Warn("ledger: record item failed: %v", err)
	}
}

func (m *Migrator) finishRun(ctx context.Context, runID string, report *driving.RunReport) {
	if m.ledger == nil {
		return
	}
	err := m.ledger.FinishRun(ctx, domain.RunSummary{
		RunID:           runID,
		FinishedAt:      time.Now().UTC(),
		PostsFetched:    report.PostsFetched,
		AssetsPublished: report.AssetsPublished,
		AssetsFailed:    report.AssetsFailed,
		EntriesCreated:  report.EntriesCreated,
		EntriesFailed:   report.EntriesFailed,
	})
	if err != nil {
		logger.Warn("ledger: finish run failed: %v", err)
	}
}
