// ABOUTME: CLI command to build the golden rule store from documents
// ABOUTME: Chunks, tags and embeds the rule text, then saves the store
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/pagesmith/internal/extract"
)

var (
	buildText  string
	buildTags  []string
	buildStdin bool
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Build the golden rule store",
		Long: `Build the golden rule store from rule documents.

Documents may be .txt, .md, .pdf or .docx. All text is concatenated,
split into overlapping word windows, tagged, embedded and saved. The
previous store is replaced only when the build succeeds.

Examples:
  pagesmith build golden_rules.docx
  pagesmith build --tags=house-style rules/*.md
  cat rules.txt | pagesmith build --stdin`,
		RunE: runBuild,
	}

	cmd.Flags().StringVar(&buildText, "text", "", "Rule text to embed before any files")
	cmd.Flags().StringSliceVar(&buildTags, "tags", []string{}, "Tags added to every chunk (comma-separated)")
	cmd.Flags().BoolVar(&buildStdin, "stdin", false, "Read rule text from stdin")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	parts := []string{buildText}
	if buildStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		parts = append(parts, string(data))
	}
	if len(args) > 0 {
		docs, err := extract.Files(args...)
		if err != nil {
			return err
		}
		parts = append(parts, docs)
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return fmt.Errorf("no rule text provided")
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	chunks, err := app.Store.Build(context.Background(), text, buildTags)
	if err != nil {
		return err
	}
	if err := app.SaveStore(); err != nil {
		return fmt.Errorf("saving rule store: %w", err)
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), app.Store.Stats())
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Embedded %d golden rule chunk(s) into %s storage\n", len(chunks), app.Backend.Name())
	}
	return nil
}
