package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `{
		"property_url": "https://www.alanranger.com",
		"database_url": "postgres://localhost/audit",
		"trustpilot": {"rating": 4.8, "review_count": 150, "captured_at": "2026-06-01"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://www.alanranger.com", cfg.PropertyURL)
	assert.Equal(t, 4.8, cfg.Trustpilot.Rating)
	assert.True(t, cfg.Trustpilot.Valid())
}

func TestLoad_ErrorsOnMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad_ErrorsOnInvalidJSON(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_RejectsBadPropertyURL(t *testing.T) {
	cfg := &Config{PropertyURL: "not-a-url"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsOutOfRangeRating(t *testing.T) {
	cfg := &Config{Trustpilot: TrustpilotSnapshot{Rating: 6}}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults_FillsEmptyFields(t *testing.T) {
	cfg := Config{PropertyURL: "https://www.alanranger.com"}
	merged := cfg.MergeWithDefaults(Config{
		PropertyURL: "https://ignored.example.com",
		DatabaseURL: "postgres://localhost/audit",
	})

	assert.Equal(t, "https://www.alanranger.com", merged.PropertyURL)
	assert.Equal(t, "postgres://localhost/audit", merged.DatabaseURL)
}

func TestMergeWithDefaults_TrustpilotFallsBackToSnapshot(t *testing.T) {
	// No snapshot anywhere: the built-in default applies.
	merged := (&Config{}).MergeWithDefaults(Config{})
	assert.True(t, merged.Trustpilot.Valid())
	assert.Equal(t, DefaultTrustpilot, merged.Trustpilot)

	// A configured snapshot wins over the default.
	cfg := Config{Trustpilot: TrustpilotSnapshot{Rating: 4.2, ReviewCount: 10}}
	merged = cfg.MergeWithDefaults(Config{})
	assert.Equal(t, 4.2, merged.Trustpilot.Rating)
}

func TestMergeWithDefaults_BacklinksFillFromDefaults(t *testing.T) {
	defaults := Config{Backlinks: BacklinkSnapshot{ReferringDomains: 80, TotalBacklinks: 600, FollowRatio: 0.6}}

	merged := (&Config{}).MergeWithDefaults(defaults)
	assert.Equal(t, 80, merged.Backlinks.ReferringDomains)

	cfg := Config{Backlinks: BacklinkSnapshot{ReferringDomains: 200}}
	merged = cfg.MergeWithDefaults(defaults)
	assert.Equal(t, 200, merged.Backlinks.ReferringDomains)
}
