// massive prepares the MASSIVE intent corpus per locale, benchmarks a
// classifier on it, and serves the trained models.
//
// Usage:
//
//	massive fetch --source massive-1.1
//	massive bench [--locale en-US ...] [--format markdown]
//	massive prepare --out prepared/
//	massive serve [--watch]
//	massive mcp
//	massive runs [--locale en-US]
//	massive sources list|check|set-url
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/massive-bench/pkg/logging"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	cfg        config
)

var rootCmd = &cobra.Command{
	Use:   "massive",
	Short: "Prepare and benchmark the MASSIVE multilingual intent corpus",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		level, err := logging.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		logging.Init(level, loaded.LogFormat)
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "massive.yaml", "path to config file")

	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
