// ABOUTME: CLI command to query the golden rule store
// ABOUTME: Prints ranked chunks with their tags and similarity scores
package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	queryTopK int
	queryTags []string
)

// NewQueryCmd creates the query command
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Query the golden rule store",
		Long: `Retrieve the golden rule chunks most similar to the query text.

With --tags, only chunks sharing at least one tag are kept; filtering happens
after ranking, so fewer than --top-k results may come back.

Examples:
  pagesmith query "dental | home | Portland"
  pagesmith query --top-k 3 --tags seo,cta "service page"
  pagesmith query --format json "about page tone"`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().IntVar(&queryTopK, "top-k", 5, "Maximum chunks to return")
	cmd.Flags().StringSliceVar(&queryTags, "tags", []string{}, "Required tags (comma-separated)")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(queryTopK, "top-k"); err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	if !app.Store.Ready() && !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Rule store is empty; run 'pagesmith build' first")
	}

	results := app.Store.Query(context.Background(), args[0], queryTopK, queryTags)

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), results)
	}
	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No rules found for query: %s\n", args[0])
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tTAGS\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t----\t-------\n")
	for _, chunk := range results {
		score := 0.0
		if chunk.Metadata.Score != nil {
			score = *chunk.Metadata.Score
		}
		fmt.Fprintf(w, "%.3f\t%s\t%s\n",
			score,
			truncate(strings.Join(chunk.Metadata.Tags, ","), 30),
			truncate(oneLine(chunk.Text), 70))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d rule chunk(s)\n", len(results))
	}
	return nil
}
