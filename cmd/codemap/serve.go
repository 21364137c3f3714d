package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/grahambrooks/codemap/internal/mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveInMemory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Launch the tool-server over stdio, exposing the task-server operations of spec.md §6",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "reserved for a future network transport; the current transport is stdio")
	serveCmd.Flags().BoolVar(&serveInMemory, "in-memory", false, "use an ephemeral in-memory store instead of .codemap/index.db")
}

func runServe(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	root, err := resolveRoot(arg)
	if err != nil {
		return err
	}

	if serveInMemory {
		os.Setenv("IN_MEMORY", "1")
	}
	if servePort != 0 {
		slog.Warn("serve.port.unsupported", "port", servePort, "reason", "stdio transport only; see DESIGN.md")
	}

	db, err := openStoreForRoot(root)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	srv := mcpserver.NewServer(db, root)
	slog.Info("server.start", "root", root, "tools", len(srv.ToolNames()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
