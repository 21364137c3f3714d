// Command codemap is the CLI front-end over the indexing and query core:
// index/status/search/context/serve, per spec.md §6.
//
// Grounded on the teacher's cmd/codebase-memory-mcp/main.go for the
// store-open-then-dispatch shape, and on rohankatakam-coderisk's
// cmd/crisk (cobra.Command tree, PersistentFlags, one file per
// subcommand) for the CLI framework itself — the teacher parses os.Args
// by hand, but the rest of the retrieved pack reaches for Cobra, so
// codemap follows the pack's more common choice (see SPEC_FULL.md's
// Domain Stack and DESIGN.md).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "codemap",
	Short: "Multi-language code-intelligence indexer and query engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose || os.Getenv("CODEMAP_LOG_LEVEL") == "debug" {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(serveCmd)
}
