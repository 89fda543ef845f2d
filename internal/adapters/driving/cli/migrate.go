package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/adapters/driven/config/file"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/adapters/driven/contentful"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/adapters/driven/ledger/sqlite"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/connectors/wordpress"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driven"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/services"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the full migration pipeline",
	Long: `Fetches posts and auxiliary resources from the WordPress site,
normalises them, writes the intermediate snapshot, then publishes assets
and entries to Contentful. Per-item publish failures are reported in the
summary but do not abort the run.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var ledger driven.RunLedger
	if settings.Migration.LedgerPath != "" {
		l, err := sqlite.Open(settings.Migration.LedgerPath)
		if err != nil {
			logger.Warn("opening run ledger failed, continuing without it: %v", err)
		} else {
			ledger = l
			defer l.Close()
		}
	}

	migrator := newMigrator(ctx, settings, ledger)

	cmd.Printf("Migrating %s -> Contentful space %s/%s...\n",
		settings.Source.BaseURL, settings.Destination.SpaceID, settings.Destination.EnvironmentID)

	report, err := migrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if report.PostsFetched == 0 {
		cmd.Println("No posts to migrate; nothing to do.")
		return nil
	}

	cmd.Printf("Run %s complete.\n", report.RunID)
	cmd.Printf("  Posts:   %d fetched, %d normalised\n", report.PostsFetched, report.PostsNormalized)
	cmd.Printf("  Assets:  %d published, %d failed\n", report.AssetsPublished, report.AssetsFailed)
	cmd.Printf("  Entries: %d published, %d failed\n", report.EntriesCreated, report.EntriesFailed)
	if report.SnapshotPath != "" {
		cmd.Printf("  Snapshot: %s\n", report.SnapshotPath)
	}
	return nil
}

// newMigrator builds the pipeline from settings.
func newMigrator(ctx context.Context, settings *file.Settings, ledger driven.RunLedger) *services.Migrator {
	source := wordpress.NewClient(settings.Source.BaseURL)
	dest := contentful.NewClient(ctx, contentful.Config{
		SpaceID:       settings.Destination.SpaceID,
		EnvironmentID: settings.Destination.EnvironmentID,
		Token:         settings.Destination.Token,
		RateLimit: contentful.RateLimitConfig{
			RequestsPerSecond: settings.Destination.RequestsPerSecond,
			BurstSize:         settings.Destination.Burst,
		},
	})

	return services.NewMigrator(source, dest, ledger, services.Options{
		MaxPosts:      settings.Source.MaxPosts,
		MaxTags:       settings.Source.MaxTags,
		MaxCategories: settings.Source.MaxCategories,
		MaxMedia:      settings.Source.MaxMedia,
		Mode:          settings.Mode(),
		ContentTypeID: settings.Destination.ContentTypeID,
		Locale:        settings.Destination.Locale,
		SnapshotPath:  settings.Migration.SnapshotPath,
		Workers:       settings.Migration.Workers,
	})
}
