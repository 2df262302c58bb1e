// Package main provides the entry point for the SEO audit agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "audit_agent",
	Short: "SEO and AI-visibility audit agent",
	Long:  "Audit agent scores a photography business website across search visibility, authority, content and schema, local entity, service area, and brand pillars, using Search Console and DataForSEO data.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
