// ABOUTME: CLI command to show rule store status
// ABOUTME: Reports readiness, size, dimension, index kind and tag counts
package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show rule store status",
		Long: `Show whether the golden rule store is ready and what it contains.

Examples:
  pagesmith status
  pagesmith status --format json`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	stats := app.Store.Stats()
	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Storage:   %s (%s)\n", app.Backend.Name(), app.Config.IndexPrefix)
	if !stats.Ready {
		fmt.Fprintln(out, "Rules:     not built")
		return nil
	}
	fmt.Fprintf(out, "Rules:     %d chunk(s)\n", stats.Chunks)
	fmt.Fprintf(out, "Index:     %s, %d dimensions\n", stats.IndexKind, stats.Dimension)
	if stats.BuiltAt != nil {
		fmt.Fprintf(out, "Built:     %s\n", formatTime(*stats.BuiltAt))
	}

	tags := make([]string, 0, len(stats.Tags))
	for tag := range stats.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	if len(tags) > 0 {
		fmt.Fprintln(out, "Tags:")
		for _, tag := range tags {
			fmt.Fprintf(out, "  %-12s %d\n", tag, stats.Tags[tag])
		}
	}
	return nil
}
