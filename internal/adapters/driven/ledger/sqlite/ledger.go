// Package sqlite persists migration run results to a local SQLite
// database for post-run inspection. The ledger is write-only during a
// run; resumable migrations are out of scope.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.RunLedger = (*Ledger)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	started_at       TEXT NOT NULL,
	finished_at      TEXT,
	posts_fetched    INTEGER NOT NULL DEFAULT 0,
	assets_published INTEGER NOT NULL DEFAULT 0,
	assets_failed    INTEGER NOT NULL DEFAULT 0,
	entries_created  INTEGER NOT NULL DEFAULT 0,
	entries_failed   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS items (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	kind           TEXT NOT NULL,
	source_key     TEXT NOT NULL,
	destination_id TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	error          TEXT NOT NULL DEFAULT '',
	recorded_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_run ON items(run_id);
`

// Ledger is a SQLite-backed RunLedger.
type Ledger struct {
	db   *sql.DB
	path string
}

// Open creates or opens the ledger database at path.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}

	return &Ledger{db: db, path: path}, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Path returns the database file path.
func (l *Ledger) Path() string {
	return l.path
}

// BeginRun records the start of a run.
func (l *Ledger) BeginRun(ctx context.Context, run domain.RunInfo) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("ledger: begin run: %w", err)
	}
	return nil
}

// RecordItem records the outcome of one asset or entry.
func (l *Ledger) RecordItem(ctx context.Context, item domain.ItemResult) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO items (run_id, kind, source_key, destination_id, status, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.RunID, item.Kind, item.SourceKey, item.DestinationID, item.Status, item.Error,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("ledger: record item: %w", err)
	}
	return nil
}

// FinishRun records the final summary of a run.
func (l *Ledger) FinishRun(ctx context.Context, summary domain.RunSummary) error {
	_, err := l.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, posts_fetched = ?, assets_published = ?,
		 assets_failed = ?, entries_created = ?, entries_failed = ? WHERE id = ?`,
		summary.FinishedAt.Format(time.RFC3339), summary.PostsFetched,
		summary.AssetsPublished, summary.AssetsFailed,
		summary.EntriesCreated, summary.EntriesFailed, summary.RunID)
	if err != nil {
		return fmt.Errorf("ledger: finish run: %w", err)
	}
	return nil
}
