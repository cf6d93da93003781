package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosteel/internal/config"
	"github.com/alexiusacademia/gosteel/internal/server"
)

var (
	serveAddr        string
	serveReadTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the section preview server",
	Long: `Serve profiles, SVG diagrams and the catalog over HTTP.

Endpoints:
  GET /api/profile?family=pipe&D=165.2&t=5
  GET /api/diagram.svg?designation=H-300x150x6.5x9
  GET /api/catalog?family=channel
  GET /health
  GET /metrics

Settings default to GOSTEEL_ADDR, GOSTEEL_READ_TIMEOUT and
GOSTEEL_CATALOG.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", cfg.GetString(config.EnvAddr, ":8080"), "Listen address")
	serveCmd.Flags().DurationVar(&serveReadTimeout, "read-timeout", cfg.GetDuration(config.EnvReadTimeout, 10*time.Second), "HTTP read timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(catalogFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Address:     serveAddr,
		ReadTimeout: serveReadTimeout,
	}, logger, cat)
	fmt.Printf("  gosteel preview server on %s (%d catalog sections)\n", serveAddr, len(cat.Entries()))
	return srv.Run(ctx)
}
