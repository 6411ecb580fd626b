package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"database_url": "data/remote_jobs.db",
		"output_dir": "exports",
		"remotive_limit": 50,
		"listing_pages": 3,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "data/remote_jobs.db", cfg.DatabaseURL)
	assert.Equal(t, "exports", cfg.OutputDir)
	assert.Equal(t, 50, cfg.RemotiveLimit)
	assert.Equal(t, 3, cfg.ListingPages)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{
		RemotiveLimit: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "remotive_limit")
}

func TestValidate_NegativeDelay(t *testing.T) {
	cfg := &Config{
		PolitenessDelayMillis: -200,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "politeness_delay_ms")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:           "remote_jobs.db",
		RemotiveLimit:         100,
		ListingPages:          2,
		RequestTimeoutSeconds: 30,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DatabaseURL:           "remote_jobs.db",
		OutputDir:             "exports",
		RemotiveBaseURL:       "https://remotive.com",
		RequestTimeoutSeconds: 30,
		PolitenessDelayMillis: 2000,
	}

	partial := Config{
		DatabaseURL:  "postgres://localhost/jobs",
		ListingPages: 5,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "postgres://localhost/jobs", merged.DatabaseURL)
	assert.Equal(t, 5, merged.ListingPages)

	// Default values should fill in empty fields
	assert.Equal(t, "exports", merged.OutputDir)
	assert.Equal(t, "https://remotive.com", merged.RemotiveBaseURL)
	assert.Equal(t, 30, merged.RequestTimeoutSeconds)
	assert.Equal(t, 2000, merged.PolitenessDelayMillis)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		DatabaseURL: "jobs.db",
		UseBrowser:  true,
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "jobs.db", merged.DatabaseURL)
	assert.True(t, merged.UseBrowser)
}
