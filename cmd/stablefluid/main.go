package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logFormat string
	logLevel  string
)

// main registers the stablefluid commands and exits non-zero when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "stablefluid",
		Short:         "2D stable fluids simulation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logFormat, logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stablefluid", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(),
		newBenchCmd(),
		newPresetsCmd(),
		newListCmd(),
		newPlotCmd(),
		newShowCmd(),
		newAnalyzeCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newExportPNGCmd(),
		newExportSVGCmd(),
		newExportGIFCmd(),
		newLiveCmd(),
		newGUICmd(),
		newServeCmd(),
		newScenarioCmd(),
		newSweepCmd(),
		newTuneCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging(format, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch format {
	case "text":
		h = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	slog.SetDefault(slog.New(h))
	return nil
}
