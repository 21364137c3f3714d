package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const searchResultLimit = 20

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Prefix-search symbol names, printing up to 20 matches with location and signature",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot("")
	if err != nil {
		return err
	}

	db, err := openStoreForRoot(root)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	nodes, err := db.SearchNodes(args[0], nil, searchResultLimit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(nodes) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, n := range nodes {
		fmt.Printf("%-10s %-30s %s:%d\n", n.Kind, n.Name, n.FilePath, n.StartLine)
		if n.Signature != "" {
			fmt.Printf("           %s\n", n.Signature)
		}
	}
	return nil
}
