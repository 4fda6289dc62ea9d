// ABOUTME: CLI command to profile the tone of reference copy
// ABOUTME: Reads a document or stdin and prints the tone profile
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/pagesmith/internal/extract"
	"github.com/harper/pagesmith/internal/prompt"
)

// NewToneCmd creates the tone command
func NewToneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tone [file]",
		Short: "Profile the tone of reference copy",
		Long: `Summarize sentence length, CTA density, headline ratio and tone cues.

Reads a .txt, .md, .pdf or .docx file, or stdin when no file is given.

Examples:
  pagesmith tone homepage.docx
  pbpaste | pagesmith tone --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTone,
	}
}

func runTone(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) > 0 {
		t, err := extract.File(args[0])
		if err != nil {
			return err
		}
		text = t
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text provided")
	}

	profile := prompt.AnalyzeTone(text)
	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), profile)
	}
	for _, line := range profile.Lines() {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
