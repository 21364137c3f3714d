package main

import (
	"fmt"

	"github.com/grahambrooks/codemap/internal/indexer"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index the source tree at path (default: current directory)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	root, err := resolveRoot(arg)
	if err != nil {
		return err
	}

	db, err := openStoreForRoot(root)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	stats, err := indexer.Index(db, indexer.Config{Root: root})
	if err != nil {
		return fmt.Errorf("index %s: %w", root, err)
	}

	fmt.Printf("Indexed %s\n", root)
	fmt.Printf("  files:         %d\n", stats.Files)
	fmt.Printf("  nodes:         %d\n", stats.Nodes)
	fmt.Printf("  edges:         %d\n", stats.Edges)
	fmt.Printf("  skipped:       %d\n", stats.Skipped)
	fmt.Printf("  errors:        %d\n", stats.Errors)
	fmt.Printf("  resolved refs: %d\n", stats.ResolvedRefs)
	return nil
}
