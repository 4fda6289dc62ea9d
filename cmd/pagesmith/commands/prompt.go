// ABOUTME: CLI command to assemble a page prompt without calling the model
// ABOUTME: Useful for reviewing which rules a page would receive
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/pagesmith/internal/brief"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/pipeline"
	"github.com/harper/pagesmith/internal/sitemap"
)

var (
	promptBrief       string
	promptSEO         string
	promptDiagnostics bool
)

// NewPromptCmd creates the prompt command
func NewPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Assemble the generation prompt for a brief",
		Long: `Retrieve golden rules for the page in a brief and print the assembled prompt.

Examples:
  pagesmith prompt --brief brief.yaml
  pagesmith prompt --brief brief.yaml --seo seo.csv --diagnostics
  pagesmith prompt --brief brief.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: runPrompt,
	}

	cmd.Flags().StringVar(&promptBrief, "brief", "", "Brief YAML file (required)")
	cmd.Flags().StringVar(&promptSEO, "seo", "", "SEO keyword CSV (slug, primary_keyword, supporting_keywords)")
	cmd.Flags().BoolVar(&promptDiagnostics, "diagnostics", false, "Print diagnostics after the prompt")
	_ = cmd.MarkFlagRequired("brief")

	return cmd
}

func runPrompt(cmd *cobra.Command, args []string) error {
	b, err := brief.Load(promptBrief)
	if err != nil {
		return err
	}
	seo, err := loadSEO(promptSEO)
	if err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	res, err := app.PromptGenerator().PromptFor(context.Background(), pipeline.Request{Brief: *b, SEO: seo[b.Page.Slug]})
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"query":       res.Query,
			"tags":        res.Tags,
			"prompt":      res.Prompt.Prompt,
			"diagnostics": res.Prompt.Diagnostics,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Prompt.Prompt)
	if promptDiagnostics {
		fmt.Fprintf(cmd.OutOrStdout(), "\n--- diagnostics ---\n%s\n", res.Prompt.DiagnosticsText)
	}
	return nil
}

// loadSEO parses an optional SEO CSV; an empty path yields an empty map
func loadSEO(path string) (map[string]*models.SEOEntry, error) {
	if path == "" {
		return map[string]*models.SEOEntry{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening SEO CSV: %w", err)
	}
	defer f.Close()
	return sitemap.ParseSEO(f)
}
