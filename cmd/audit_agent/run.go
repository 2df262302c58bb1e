package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alanranger/seo-audit-agent/internal/config"
	"github.com/alanranger/seo-audit-agent/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run a full audit end-to-end",
	Long: `Orchestrates the whole audit: Search Console fetch -> schema audit -> keyword enrichment -> pillar scoring -> money-page triage -> persistence.

Configuration can be loaded from a JSON file using --config. Environment variables fill in anything the file leaves unset, and command-line arguments override both.`,
	RunE: runAuditCmd,
}

var (
	runConfigPath      string
	runProperty        string
	runCredentialsFile string
	runAPIKey          string
	runDatabaseURL     string
	runLocalSignals    string
	runUseBrowser      bool
	runVerbose         bool
)

func init() {
	addConfigFlags(runCommand)
	runCommand.Flags().StringVar(&runLocalSignals, "local-signals", "", "Path to a local-signals JSON document (optional)")
	rootCmd.AddCommand(runCommand)
}

// addConfigFlags registers the configuration flags shared by the audit and
// backfill commands.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVarP(&runProperty, "property", "p", "", "Search Console property URL to audit")
	cmd.Flags().StringVar(&runCredentialsFile, "credentials", "", "Service-account JSON for Search Console (optional, defaults to GOOGLE_APPLICATION_CREDENTIALS env var)")
	cmd.Flags().StringVar(&runAPIKey, "api-key", "", "Google API key alternative (optional, defaults to GOOGLE_API_KEY env var)")
	cmd.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Render schema-audit pages in a headless browser (requires Chrome)")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
}

// loadMergedConfig layers configuration sources: file, then environment,
// then defaults. CLI flag overrides are applied by the caller before the
// merge so explicit flags always win.
func loadMergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.Load(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	if cmd.Flags().Changed("property") {
		cfg.PropertyURL = runProperty
	}
	if cmd.Flags().Changed("credentials") {
		cfg.GoogleCredentialsFile = runCredentialsFile
	}
	if cmd.Flags().Changed("api-key") {
		cfg.GoogleAPIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if cfg.PropertyURL == "" {
		return cfg, fmt.Errorf("--property is required (via flag, config, or GSC_PROPERTY_URL)")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runAuditCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	_, err = pipeline.RunAudit(context.Background(), pipeline.RunOptions{
		Config:           cfg,
		LocalSignalsPath: runLocalSignals,
		Trigger:          "cli",
	})
	return err
}
