// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Lets LLM agents query rules and assemble prompts over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/pagesmith/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs pagesmith as an MCP (Model Context Protocol) server over stdio,
so LLM agents can query golden rules, rebuild the rule store, assemble
page prompts and profile reference copy.

Logs go to stderr; stdout carries the protocol.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  pagesmith mcp

  # Configure in the client's config file:
  # {
  #   "mcpServers": {
  #     "pagesmith": {
  #       "command": "pagesmith",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	server := mcpserver.NewMCPServer("pagesmith", versionInfo.Version)
	mcp.RegisterTools(server, app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Logger.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		app.Logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}
	return nil
}
