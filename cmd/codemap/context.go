package main

import (
	"fmt"
	"strings"

	"github.com/grahambrooks/codemap/internal/contextbuild"
	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context <task...>",
	Short: "Emit task-focused context: entry points, related nodes, edges, and code blocks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runContext,
}

func runContext(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot("")
	if err != nil {
		return err
	}

	db, err := openStoreForRoot(root)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	task := strings.Join(args, " ")
	result, err := contextbuild.BuildContext(db, root, task, contextbuild.DefaultOptions())
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	fmt.Printf("task: %s\n", result.Task)
	fmt.Printf("keywords: %s\n\n", strings.Join(result.Keywords, ", "))

	fmt.Printf("entry points (%d):\n", len(result.EntryPoints))
	for _, n := range result.EntryPoints {
		fmt.Printf("  [%s] %s  %s:%d\n", n.Kind, n.Name, n.FilePath, n.StartLine)
	}

	fmt.Printf("\nrelated (%d):\n", len(result.Related))
	for _, r := range result.Related {
		fmt.Printf("  [%s] %s  %s:%d  score=%.2f\n", r.Node.Kind, r.Node.Name, r.Node.FilePath, r.Node.StartLine, r.Score)
	}

	fmt.Printf("\nedges (%d):\n", len(result.Edges))
	for _, e := range result.Edges {
		fmt.Printf("  %d --%s--> %d\n", e.SourceID, e.Kind, e.TargetID)
	}

	for _, block := range result.CodeBlocks {
		fmt.Printf("\n--- %s (%s:%d-%d) ---\n", block.Node.Name, block.Node.FilePath, block.Node.StartLine, block.Node.EndLine)
		for _, line := range block.Before {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println(block.Body)
		for _, line := range block.After {
			fmt.Printf("  %s\n", line)
		}
	}
	return nil
}
