// Package mcpserver exposes the task-server tool operations of spec.md
// §6 over the Model Context Protocol: context, search, callers, callees,
// impact, definition, file, references, reindex, node, and status. Each
// tool takes a JSON argument record and returns a formatted JSON report.
//
// Grounded on the teacher's internal/tools package: the same
// Server{mcp, handlers} shape, addTool/CallTool/ToolNames trio for
// transport-agnostic invocation, and jsonResult/errResult/parseArgs
// helpers — adapted to this spec's read-mostly tool set (no project
// router, no file watcher, no Cypher query tool — see DESIGN.md) and to
// codemap's single project-root-per-store model.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/grahambrooks/codemap/internal/indexer"
	"github.com/grahambrooks/codemap/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the current release version, reported in the MCP handshake.
const Version = "0.1.0"

// Server wraps the MCP server with codemap's tool handlers bound to one
// store and one project root.
type Server struct {
	mcp      *mcp.Server
	db       *store.Store
	root     string
	handlers map[string]mcp.ToolHandler
}

// NewServer builds a Server over db, resolving relative paths (file
// reads, reindex) against root.
func NewServer(db *store.Store, root string) *Server {
	srv := &Server{
		db:       db,
		root:     root,
		handlers: make(map[string]mcp.ToolHandler),
	}
	srv.mcp = mcp.NewServer(
		&mcp.Implementation{Name: "codemap", Version: Version},
		&mcp.ServerOptions{},
	)
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server, for StdioTransport or
// other transport binding.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) addTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mcp.AddTool(tool, handler)
	s.handlers[tool.Name] = handler
}

// CallTool invokes a registered tool handler directly, bypassing MCP
// transport — used by the package's tests.
func (s *Server) CallTool(ctx context.Context, name string, argsJSON json.RawMessage) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	if len(argsJSON) == 0 {
		argsJSON = json.RawMessage(`{}`)
	}
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: name, Arguments: argsJSON},
	}
	return handler(ctx, req)
}

// ToolNames returns all registered tool names in sorted order.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) reindex() (*indexer.Stats, error) {
	return indexer.Index(s.db, indexer.Config{Root: s.root})
}

// --- response helpers ---

func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(b)}}}
}

func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

func getStringArg(args map[string]any, key string) string {
	v, ok := args[key].(string)
	if !ok {
		return ""
	}
	return v
}

func getIntArg(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	f, ok := v.(float64) // JSON numbers decode as float64
	if !ok {
		return def
	}
	return int(f)
}

func getBoolArg(args map[string]any, key string, def bool) bool {
	v, ok := args[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}
