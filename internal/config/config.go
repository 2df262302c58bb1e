// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the audit agent configuration. Values can come from a
// JSON file, environment variables, or CLI flags; missing values use
// defaults.
type Config struct {
	// Property
	PropertyURL string `json:"property_url,omitempty" validate:"omitempty,url"` // GSC property to audit
	SiteURL     string `json:"site_url,omitempty" validate:"omitempty,url"`     // Canonical site URL for portfolio rollups

	// Credentials
	GoogleCredentialsFile string `json:"google_credentials_file,omitempty"` // Service-account JSON for Search Console
	GoogleAPIKey          string `json:"google_api_key,omitempty"`          // API key alternative for Search Console
	DataForSEOLogin       string `json:"dataforseo_login,omitempty"`        // DataForSEO basic-auth login
	DataForSEOPassword    string `json:"dataforseo_password,omitempty"`     // DataForSEO basic-auth password
	DatabaseURL           string `json:"database_url,omitempty"`            // PostgreSQL connection URL
	AdminKey              string `json:"admin_key,omitempty"`               // Shared secret guarding mutating API routes

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Render schema-audit pages in a headless browser
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information

	// Trustpilot is the manually curated review snapshot. It is injected
	// configuration, never a literal inside the scorers, so tests can
	// exercise both the data-present and fallback paths. Update policy:
	// refresh the snapshot whenever the live profile is re-checked and
	// record the date in CapturedAt.
	Trustpilot TrustpilotSnapshot `json:"trustpilot,omitempty"`

	// Backlinks is the curated backlink profile, same injection policy as
	// Trustpilot. When absent the authority backlink component scores zero.
	Backlinks BacklinkSnapshot `json:"backlinks,omitempty"`
}

// TrustpilotSnapshot is the curated Trustpilot review state.
type TrustpilotSnapshot struct {
	Rating      float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ReviewCount int     `json:"review_count,omitempty" validate:"omitempty,gte=0"`
	CapturedAt  string  `json:"captured_at,omitempty"`
}

// Valid reports whether the snapshot carries a usable rating.
func (s TrustpilotSnapshot) Valid() bool {
	return s.Rating > 0 && s.Rating <= 5
}

// BacklinkSnapshot is the curated backlink profile state.
type BacklinkSnapshot struct {
	ReferringDomains int     `json:"referring_domains,omitempty" validate:"omitempty,gte=0"`
	TotalBacklinks   int     `json:"total_backlinks,omitempty" validate:"omitempty,gte=0"`
	FollowRatio      float64 `json:"follow_ratio,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Valid reports whether the snapshot carries usable backlink figures.
func (b BacklinkSnapshot) Valid() bool {
	return b.ReferringDomains > 0
}

// DefaultTrustpilot is the fallback snapshot used when the config file does
// not override it.
var DefaultTrustpilot = TrustpilotSnapshot{
	Rating:      4.9,
	ReviewCount: 168,
	CapturedAt:  "2026-07-14",
}

// Load reads configuration from a JSON file. Returns an error if the file
// cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv builds a Config from environment variables. Empty variables leave
// fields unset so file and flag values survive merging.
func FromEnv() Config {
	return Config{
		PropertyURL:           os.Getenv("GSC_PROPERTY_URL"),
		SiteURL:               os.Getenv("SITE_URL"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GoogleAPIKey:          os.Getenv("GOOGLE_API_KEY"),
		DataForSEOLogin:       os.Getenv("DATAFORSEO_LOGIN"),
		DataForSEOPassword:    os.Getenv("DATAFORSEO_PASSWORD"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		AdminKey:              os.Getenv("ADMIN_KEY"),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.GoogleCredentialsFile != "" {
		if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.GoogleCredentialsFile)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags always win for booleans, so those are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.PropertyURL == "" {
		result.PropertyURL = defaults.PropertyURL
	}
	if result.SiteURL == "" {
		result.SiteURL = defaults.SiteURL
	}
	if result.GoogleCredentialsFile == "" {
		result.GoogleCredentialsFile = defaults.GoogleCredentialsFile
	}
	if result.GoogleAPIKey == "" {
		result.GoogleAPIKey = defaults.GoogleAPIKey
	}
	if result.DataForSEOLogin == "" {
		result.DataForSEOLogin = defaults.DataForSEOLogin
	}
	if result.DataForSEOPassword == "" {
		result.DataForSEOPassword = defaults.DataForSEOPassword
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.AdminKey == "" {
		result.AdminKey = defaults.AdminKey
	}
	if !result.Trustpilot.Valid() {
		result.Trustpilot = defaults.Trustpilot
	}
	if !result.Trustpilot.Valid() {
		result.Trustpilot = DefaultTrustpilot
	}
	if !result.Backlinks.Valid() {
		result.Backlinks = defaults.Backlinks
	}

	return result
}
