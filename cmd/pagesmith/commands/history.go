// ABOUTME: CLI command to list recent generation runs
// ABOUTME: Reads the audit records written by the generation pipeline
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generation runs",
		Long: `List recent page generation runs, newest first.

Examples:
  pagesmith history
  pagesmith history --limit 50
  pagesmith history --format json`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(historyLimit, "limit"); err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	runs, err := app.Runs.List(historyLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), runs)
	}
	if len(runs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No generation runs recorded yet")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tSLUG\tTYPE\tRULES\tRESULT\n")
	fmt.Fprintf(w, "----\t----\t----\t-----\t------\n")
	for _, run := range runs {
		result := "ok"
		if run.Error != "" {
			result = truncate(oneLine(run.Error), 50)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			formatTime(run.CreatedAt),
			truncate(run.Slug, 30),
			run.PageType,
			run.DynamicCount,
			result)
	}
	return w.Flush()
}
