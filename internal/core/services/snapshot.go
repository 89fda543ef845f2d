package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// snapshotFile is the on-disk shape of the intermediate state dump.
type snapshotFile struct {
	RunID     string                  `json:"runId"`
	CreatedAt time.Time               `json:"createdAt"`
	PostCount int                     `json:"postCount"`
	Posts     []domain.NormalizedPost `json:"posts"`
}

// WriteSnapshot dumps the full normalised post collection to a JSON
// file before publishing begins. The snapshot exists for inspection
// and debugging only; nothing reads it back during the run.
func WriteSnapshot(path, runID string, posts []domain.NormalizedPost) error {
	if path == "" {
		return fmt.Errorf("snapshot: %w: empty path", domain.ErrInvalidInput)
	}

	data, err := json.MarshalIndent(snapshotFile{
		RunID:     runID,
		CreatedAt: time.Now().UTC(),
		PostCount: len(posts),
		Posts:     posts,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("snapshot: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("snapshot: write: %w", err)
	}
	return nil
}
