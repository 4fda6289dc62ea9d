// ABOUTME: Serve command runs the HTTP API
// ABOUTME: Shuts down gracefully on SIGINT or SIGTERM
package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	transport "github.com/harper/pagesmith/internal/transport/http"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the pagesmith HTTP API.

Routes:
  GET  /healthz
  GET  /api/v1/rules/status
  POST /api/v1/rules/build
  POST /api/v1/rules/query
  POST /api/v1/prompt
  POST /api/v1/pages/generate
  POST /api/v1/tone

Examples:
  pagesmith serve
  pagesmith serve --addr 127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default PAGESMITH_HTTP_ADDR or :8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	addr := serveAddr
	if addr == "" {
		addr = app.Config.HTTPAddr
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           transport.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		app.Logger.Info("HTTP server listening", zap.String("addr", addr))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		app.Logger.Info("Shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
