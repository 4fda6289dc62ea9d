// ABOUTME: CLI command to generate page copy for one page or a whole sitemap
// ABOUTME: Site runs write the combined export document
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/pagesmith/internal/brief"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/pipeline"
	"github.com/harper/pagesmith/internal/sitemap"
)

var (
	generateBrief   string
	generateSitemap string
	generateSEO     string
	generateOut     string
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate page copy",
		Long: `Generate page copy with the configured chat model.

With only --brief, the page described in the brief is generated and its
JSON printed. With --sitemap, every page in the sitemap is generated using
the brief's brand and keywords, and the combined site export is written.
Output that parses but does not match the page schema is still written,
and the command exits with an error.

Examples:
  pagesmith generate --brief brief.yaml
  pagesmith generate --brief brief.yaml --sitemap sitemap.csv --seo seo.csv --out site.json`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().StringVar(&generateBrief, "brief", "", "Brief YAML file (required)")
	cmd.Flags().StringVar(&generateSitemap, "sitemap", "", "Sitemap CSV (slug, page_name, page_type)")
	cmd.Flags().StringVar(&generateSEO, "seo", "", "SEO keyword CSV (slug, primary_keyword, supporting_keywords)")
	cmd.Flags().StringVarP(&generateOut, "out", "o", "", "Write JSON to this file instead of stdout")
	_ = cmd.MarkFlagRequired("brief")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	b, err := brief.Load(generateBrief)
	if err != nil {
		return err
	}
	seo, err := loadSEO(generateSEO)
	if err != nil {
		return err
	}

	var pages []models.PageDefinition
	if generateSitemap != "" {
		f, err := os.Open(generateSitemap)
		if err != nil {
			return fmt.Errorf("opening sitemap: %w", err)
		}
		var warnings []string
		pages, warnings, err = sitemap.ParsePages(f, nil)
		_ = f.Close()
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
		}
		if len(pages) == 0 {
			return fmt.Errorf("sitemap has no usable pages")
		}
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	gen, err := app.Generator()
	if err != nil {
		return err
	}
	if !app.Store.Ready() && !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: rule store is empty; prompts will carry static rules only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, closeOut, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	if pages == nil {
		res, genErr := gen.Generate(ctx, pipeline.Request{Brief: *b, SEO: seo[b.Page.Slug]})
		if res != nil && res.Page != nil {
			if err := printJSON(out, res.Page); err != nil {
				return err
			}
		}
		return genErr
	}

	outcomes, err := gen.GenerateSite(ctx, *b, pages, seo)
	if err != nil {
		return err
	}
	if err := printJSON(out, pipeline.BuildSiteExport(outcomes)); err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Valid() {
			continue
		}
		failed++
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", o.Page.Slug, o.Err)
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d/%d page(s)\n", len(outcomes)-failed, len(outcomes))
	}
	if failed > 0 {
		return fmt.Errorf("%d page(s) failed", failed)
	}
	return nil
}

// outputWriter returns --out or stdout and a close func
func outputWriter(cmd *cobra.Command) (io.Writer, func(), error) {
	if generateOut == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(generateOut)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
