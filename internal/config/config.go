// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // SQLite path or PostgreSQL connection URL
	OutputDir   string `json:"output_dir,omitempty"`   // Directory for CSV exports

	// Sources
	RemotiveBaseURL string `json:"remotive_base_url,omitempty"` // Remotive API root
	RemotiveLimit   int    `json:"remotive_limit,omitempty"`    // Jobs per Remotive category (0 = no cap)
	ListingPages    int    `json:"listing_pages,omitempty"`     // WeWorkRemotely listing pages to crawl

	// Behavior
	RequestTimeoutSeconds int  `json:"request_timeout_seconds,omitempty"` // HTTP timeout per request
	PolitenessDelayMillis int  `json:"politeness_delay_ms,omitempty"`    // Pause between requests to a source
	UseBrowser            bool `json:"use_browser,omitempty"`            // Use headless browser for client-rendered pages
	Verbose               bool `json:"verbose,omitempty"`                // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.RemotiveLimit < 0 {
		return fmt.Errorf("config error: 'remotive_limit' must be non-negative")
	}
	if c.ListingPages < 0 {
		return fmt.Errorf("config error: 'listing_pages' must be non-negative")
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be non-negative")
	}
	if c.PolitenessDelayMillis < 0 {
		return fmt.Errorf("config error: 'politeness_delay_ms' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.RemotiveBaseURL == "" {
		result.RemotiveBaseURL = defaults.RemotiveBaseURL
	}

	// Int fields: use default if zero
	if result.RemotiveLimit == 0 {
		result.RemotiveLimit = defaults.RemotiveLimit
	}
	if result.ListingPages == 0 {
		result.ListingPages = defaults.ListingPages
	}
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if result.PolitenessDelayMillis == 0 {
		result.PolitenessDelayMillis = defaults.PolitenessDelayMillis
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
