// Package cli wires the adapters and services together and exposes
// the command-line surface: migrate, check, and version.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/adapters/driven/config/file"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose    bool
	flagConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "wp2contentful",
	Short: "Migrate WordPress blog content into Contentful",
	Long: `wp2contentful migrates posts, tags, categories, and images from a
WordPress site's REST API into a Contentful space: posts become entries,
images become published assets, and body HTML is converted to markdown
or structured rich text.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"print pipeline diagnostics to stderr")
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "",
		"path to config file (default ~/.wp2contentful/config.toml)")
}

// Execute runs the root command. It returns an exit code so main can
// terminate the process without os.Exit scattered through commands.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadSettings resolves the config path and loads settings.
func loadSettings() (*file.Settings, error) {
	path := flagConfigPath
	if path == "" {
		var err error
		path, err = file.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
	}
	return file.Load(path)
}
