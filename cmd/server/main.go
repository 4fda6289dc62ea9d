// ABOUTME: Standalone entry point for the pagesmith MCP server over stdio
// ABOUTME: Loads config, wires the rule store and registers every MCP tool

package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/harper/pagesmith/internal/bootstrap"
	"github.com/harper/pagesmith/internal/config"
	"github.com/harper/pagesmith/internal/logging"
	"github.com/harper/pagesmith/internal/mcp"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() { _ = app.Close() }()

	server := mcpserver.NewMCPServer("pagesmith", "0.1.0")
	mcp.RegisterTools(server, app)

	logger.Info("pagesmith MCP server starting on stdio")
	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}
