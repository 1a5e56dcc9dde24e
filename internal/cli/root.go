// Package cli implements the megafauna command's cobra subcommands,
// the same rootCmd/subcommand-flag shape as a typical cobra-based
// inference-sim CLI.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "megafauna",
	Short: "Herbivore energetics and population simulation core",
}

// Execute runs the CLI root command.
func Execute() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateConfigCmd)
}
