package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alanranger/seo-audit-agent/internal/pipeline"
)

var backfillCommand = &cobra.Command{
	Use:   "backfill",
	Short: "Compute portfolio segment rollups for the 1/7/28-day windows",
	Long: `Pulls Search Console data for each window, classifies every page and query into portfolio segments, and persists per-segment rollups in both the all-pages and active-cycles scopes.

Requires the database; rollups exist only as stored rows.`,
	RunE: runBackfillCmd,
}

var (
	backfillTrackedFile string
)

func init() {
	addConfigFlags(backfillCommand)
	backfillCommand.Flags().StringVar(&backfillTrackedFile, "tracked-urls", "", "Path to a file of tracked URLs, one per line (optional)")
	rootCmd.AddCommand(backfillCommand)
}

func runBackfillCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("backfill requires DATABASE_URL or --db-url")
	}

	var tracked []string
	if backfillTrackedFile != "" {
		tracked, err = readURLList(backfillTrackedFile)
		if err != nil {
			return fmt.Errorf("failed to read tracked URLs: %w", err)
		}
	}

	return pipeline.RunBackfill(context.Background(), pipeline.RunOptions{
		Config:      cfg,
		Trigger:     "cli",
		TrackedURLs: tracked,
	})
}

// readURLList reads non-empty, non-comment lines from a file.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
