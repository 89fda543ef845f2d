package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "runs", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedger_FullRun(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, l.BeginRun(ctx, domain.RunInfo{ID: "run-1", StartedAt: started}))

	require.NoError(t, l.RecordItem(ctx, domain.ItemResult{
		RunID:         "run-1",
		Kind:          domain.ItemAsset,
		SourceKey:     "hero.jpg",
		DestinationID: "asset-1",
		Status:        domain.StatusPublished,
	}))
	require.NoError(t, l.RecordItem(ctx, domain.ItemResult{
		RunID:     "run-1",
		Kind:      domain.ItemEntry,
		SourceKey: "a-post",
		Status:    domain.StatusFailed,
		Error:     "create rejected",
	}))

	require.NoError(t, l.FinishRun(ctx, domain.RunSummary{
		RunID:           "run-1",
		FinishedAt:      started.Add(time.Minute),
		PostsFetched:    1,
		AssetsPublished: 1,
		EntriesFailed:   1,
	}))

	var finishedAt string
	var postsFetched, assetsPublished, entriesFailed int
	err := l.db.QueryRow(
		`SELECT finished_at, posts_fetched, assets_published, entries_failed FROM runs WHERE id = ?`,
		"run-1",
	).Scan(&finishedAt, &postsFetched, &assetsPublished, &entriesFailed)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T10:01:00Z", finishedAt)
	assert.Equal(t, 1, postsFetched)
	assert.Equal(t, 1, assetsPublished)
	assert.Equal(t, 1, entriesFailed)

	rows, err := l.db.Query(`SELECT kind, source_key, status, error FROM items WHERE run_id = ? ORDER BY rowid`, "run-1")
	require.NoError(t, err)
	defer rows.Close()

	type item struct{ kind, key, status, errMsg string }
	var items []item
	for rows.Next() {
		var it item
		require.NoError(t, rows.Scan(&it.kind, &it.key, &it.status, &it.errMsg))
		items = append(items, it)
	}
	require.NoError(t, rows.Err())
	require.Len(t, items, 2)
	assert.Equal(t, item{domain.ItemAsset, "hero.jpg", domain.StatusPublished, ""}, items[0])
	assert.Equal(t, item{domain.ItemEntry, "a-post", domain.StatusFailed, "create rejected"}, items[1])
}

func TestLedger_DuplicateRunIDRejected(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()
	run := domain.RunInfo{ID: "run-1", StartedAt: time.Now().UTC()}

	require.NoError(t, l.BeginRun(ctx, run))

	assert.Error(t, l.BeginRun(ctx, run))
}

func TestLedger_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.BeginRun(context.Background(), domain.RunInfo{ID: "run-1", StartedAt: time.Now().UTC()}))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()
	assert.Equal(t, path, l.Path())

	var count int
	require.NoError(t, l.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count))
	assert.Equal(t, 1, count)
}
