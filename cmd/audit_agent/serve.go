package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alanranger/seo-audit-agent/internal/config"
	"github.com/alanranger/seo-audit-agent/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for triggering audits, reading pillar scores, portfolio rollups, and classification.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	envCfg := config.FromEnv()
	cfg := envCfg.MergeWithDefaults(config.Config{})
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:  servePort,
		Agent: cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
