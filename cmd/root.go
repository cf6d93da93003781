package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosteel/internal/config"
	"github.com/alexiusacademia/gosteel/internal/logging"
	"github.com/alexiusacademia/gosteel/internal/version"
)

var (
	cfg    = config.Load()
	logger = logging.NewDefaultLogger()
)

var (
	logLevel    string
	logFormat   string
	catalogFile string
)

var rootCmd = &cobra.Command{
	Use:   "gosteel",
	Short: "Steel Section Profile Builder",
	Long: `gosteel - Go Steel Section Profile Builder

A CLI tool that turns rolled and cold-formed steel section dimensions
into closed 2D profiles for structural modeling.

This tool helps structural engineers:
  - Build profiles for H, I, channel, angle, tube, pipe and solid sections
  - Compute area, centroid and second moments of area
  - Draw annotated section diagrams (SVG, PNG, PDF)
  - Extrude members into 3D solids (STL) with feature edges
  - Browse a catalog of standard sections

Dimensions are given in millimeters; profiles are in meters.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.NewLogger(logging.Config{
			Level:       logLevel,
			Format:      logFormat,
			Development: cfg.GetBool(config.EnvDevelopment, false),
		})
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gosteel v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Steel Section Profile Builder                        ║")
		fmt.Println("  ║   Alexius S. Academia ©  2026                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool that builds closed 2D profiles of steel sections")
		fmt.Println("  for structural modeling and visualization.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • 17 section families, from wide flange H to estimated rounds")
		fmt.Println("    • Geometric properties of any profile")
		fmt.Println("    • Annotated section diagrams")
		fmt.Println("    • 3D member extrusion to STL")
		fmt.Println("    • Standard section catalog and preview server")
		fmt.Println()
		fmt.Println("  Use 'gosteel --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.GetString(config.EnvLogLevel, "warn"), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", cfg.GetString(config.EnvCatalog, ""), "Section catalog YAML file (default built-in)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", cfg.GetString(config.EnvLogFormat, "console"), "Log format (console, json)")
}
