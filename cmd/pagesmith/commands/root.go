// ABOUTME: Root command, global flags and shared app setup for the CLI
// ABOUTME: Every subcommand loads .env, config and logging the same way
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/pagesmith/internal/bootstrap"
	"github.com/harper/pagesmith/internal/config"
	"github.com/harper/pagesmith/internal/logging"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
█▀█ ▄▀█ █▀▀ █▀▀ █▀ █▀▄▀█ █ ▀█▀ █ █
█▀▀ █▀█ █▄█ ██▄ ▄█ █ ▀ █ █  █  █▀█
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagesmith",
		Short: "Golden-rule guided website copy generation",
		Long: banner + `
pagesmith turns a sitemap and a brand brief into page copy. A store of
agency golden rules is embedded once, then the most relevant snippets are
retrieved for every page and assembled into the generation prompt.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			switch outputFormat {
			case "auto", "text", "json":
				return nil
			default:
				return fmt.Errorf("unknown --format %q (want auto, text or json)", outputFormat)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print results")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text or json")

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewPromptCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewToneCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads .env and the environment
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger honours --verbose and --quiet over the configured level
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	return logging.New(level, cfg.LogFormat)
}

// openApp loads configuration and wires the application
func openApp() (*bootstrap.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing: %w", err)
	}
	return app, nil
}

// wantJSON reports whether results should be printed as JSON
func wantJSON() bool {
	return outputFormat == "json"
}
