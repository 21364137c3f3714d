package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "Print file/node/edge counts, size, and per-language/per-kind histograms",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	stats, err := db.GetStats()
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	fmt.Printf("%s\n", root)
	fmt.Printf("  files: %d   nodes: %d   edges: %d   size: %d bytes\n",
		stats.FileCount, stats.NodeCount, stats.EdgeCount, stats.ByteSize)

	fmt.Println("\nby language:")
	for _, lang := range sortedKeys(stats.ByLanguage) {
		fmt.Printf("  %-12s %d\n", lang, stats.ByLanguage[lang])
	}

	fmt.Println("\nby kind:")
	for _, kind := range sortedKeys(stats.ByKind) {
		fmt.Printf("  %-12s %d\n", kind, stats.ByKind[kind])
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
