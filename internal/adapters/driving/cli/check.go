package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify connectivity without migrating anything",
	Long: `Runs the preflight checks only: source API reachability, Contentful
credentials and environment, and presence of the target content type.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := context.Background()
	migrator := newMigrator(ctx, settings, nil)

	failed := false
	for _, check := range migrator.Preflight(ctx) {
		if check.OK() {
			cmd.Printf("ok    %s\n", check.Name)
			continue
		}
		failed = true
		cmd.Printf("FAIL  %s: %v\n", check.Name, check.Err)
	}

	if failed {
		return errors.New("one or more preflight checks failed")
	}
	cmd.Println("All checks passed.")
	return nil
}
