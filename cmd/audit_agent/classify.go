package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alanranger/seo-audit-agent/internal/segment"
)

var classifyCommand = &cobra.Command{
	Use:   "classify",
	Short: "Classify keywords and pages into audit segments",
}

var classifyKeywordCommand = &cobra.Command{
	Use:   "keyword <keyword>",
	Short: "Classify a keyword into brand, money, education, or other",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassifyKeyword,
}

var classifyPageCommand = &cobra.Command{
	Use:   "page <url>",
	Short: "Classify a page URL into its business segment",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassifyPage,
}

var (
	classifyPageType string
	classifyTitle    string
	classifyOverride string
)

func init() {
	classifyKeywordCommand.Flags().StringVar(&classifyPageType, "page-type", "", "Page-type hint (e.g. GBP, Blog); only boosts confidence")
	classifyPageCommand.Flags().StringVar(&classifyTitle, "title", "", "Page title (optional)")
	classifyPageCommand.Flags().StringVar(&classifyOverride, "kind", "", "Explicit page-kind override (education, money, support, system)")

	classifyCommand.AddCommand(classifyKeywordCommand)
	classifyCommand.AddCommand(classifyPageCommand)
	rootCmd.AddCommand(classifyCommand)
}

func runClassifyKeyword(_ *cobra.Command, args []string) error {
	result := segment.ClassifyKeyword(segment.KeywordInput{
		Keyword:  args[0],
		PageType: classifyPageType,
	})
	return printJSON(result)
}

func runClassifyPage(_ *cobra.Command, args []string) error {
	seg := segment.ClassifyPage(args[0], classifyTitle, classifyOverride)
	out := map[string]string{
		"url":     args[0],
		"path":    segment.NormalizePath(args[0]),
		"segment": string(seg),
	}
	if seg == segment.PageMoney {
		out["sub_segment"] = string(segment.ClassifyMoneySubSegment(args[0]))
	}
	return printJSON(out)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
