// Package file loads migration settings from a TOML file, with
// environment-variable overrides for credentials so tokens never have
// to live on disk.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// DefaultFileName is the config file looked up when no path is given.
const DefaultFileName = "config.toml"

// DefaultConfigDir is the directory under the user's home holding the
// default config file.
const DefaultConfigDir = ".wp2contentful"

// Settings is the full configuration of one migration run.
type Settings struct {
	Source      SourceSettings      `toml:"source"`
	Destination DestinationSettings `toml:"destination"`
	Migration   MigrationSettings   `toml:"migration"`
}

// SourceSettings configures the WordPress side.
type SourceSettings struct {
	BaseURL       string `toml:"base_url"`
	MaxPosts      int    `toml:"max_posts"`
	MaxTags       int    `toml:"max_tags"`
	MaxCategories int    `toml:"max_categories"`
	MaxMedia      int    `toml:"max_media"`
}

// DestinationSettings configures the Contentful side.
type DestinationSettings struct {
	SpaceID           string  `toml:"space_id"`
	EnvironmentID     string  `toml:"environment_id"`
	Token             string  `toml:"management_token"`
	ContentTypeID     string  `toml:"content_type_id"`
	Locale            string  `toml:"locale"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// MigrationSettings configures pipeline behaviour.
type MigrationSettings struct {
	Mode         string `toml:"mode"` // flat or structured
	SnapshotPath string `toml:"snapshot_path"`
	LedgerPath   string `toml:"ledger_path"`
	Workers      int    `toml:"workers"`
}

// Environment variables that override file values. Credentials are
// expected here rather than in the file.
const (
	EnvSourceBaseURL = "WP_BASE_URL"
	EnvSpaceID       = "CONTENTFUL_SPACE_ID"
	EnvEnvironmentID = "CONTENTFUL_ENVIRONMENT_ID"
	EnvToken         = "CONTENTFUL_MANAGEMENT_TOKEN"
)

// DefaultPath returns ~/.wp2contentful/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigDir, DefaultFileName), nil
}

// Load reads settings from the TOML file at path, applies environment
// overrides and defaults, and validates the result. A missing file is
// tolerated when the environment supplies everything required.
func Load(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration is fine.
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	s.applyEnv()
	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvSourceBaseURL); v != "" {
		s.Source.BaseURL = v
	}
	if v := os.Getenv(EnvSpaceID); v != "" {
		s.Destination.SpaceID = v
	}
	if v := os.Getenv(EnvEnvironmentID); v != "" {
		s.Destination.EnvironmentID = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		s.Destination.Token = v
	}
}

func (s *Settings) applyDefaults() {
	if s.Source.MaxPosts <= 0 {
		s.Source.MaxPosts = 100
	}
	if s.Source.MaxTags <= 0 {
		s.Source.MaxTags = 100
	}
	if s.Source.MaxCategories <= 0 {
		s.Source.MaxCategories = 100
	}
	if s.Source.MaxMedia <= 0 {
		s.Source.MaxMedia = 100
	}
	if s.Destination.EnvironmentID == "" {
		s.Destination.EnvironmentID = "master"
	}
	if s.Destination.ContentTypeID == "" {
		s.Destination.ContentTypeID = "blogPost"
	}
	if s.Destination.Locale == "" {
		s.Destination.Locale = "en-US"
	}
	if s.Migration.Mode == "" {
		s.Migration.Mode = string(domain.ConvertStructured)
	}
	if s.Migration.SnapshotPath == "" {
		s.Migration.SnapshotPath = "wp_posts.json"
	}
	if s.Migration.Workers <= 0 {
		s.Migration.Workers = 4
	}
}

// Validate reports the first missing or malformed required setting.
// Runs before any network I/O so configuration errors surface early.
func (s *Settings) Validate() error {
	if s.Source.BaseURL == "" {
		return errors.New("source.base_url is required (or set " + EnvSourceBaseURL + ")")
	}
	if s.Destination.SpaceID == "" {
		return errors.New("destination.space_id is required (or set " + EnvSpaceID + ")")
	}
	if s.Destination.Token == "" {
		return errors.New("destination.management_token is required (or set " + EnvToken + ")")
	}
	if !domain.ConvertMode(s.Migration.Mode).Valid() {
		return fmt.Errorf("migration.mode must be %q or %q, got %q",
			domain.ConvertFlat, domain.ConvertStructured, s.Migration.Mode)
	}
	return nil
}

// Mode returns the conversion mode as a domain type.
func (s *Settings) Mode() domain.ConvertMode {
	return domain.ConvertMode(s.Migration.Mode)
}
