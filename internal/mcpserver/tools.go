package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grahambrooks/codemap/internal/contextbuild"
	"github.com/grahambrooks/codemap/internal/errs"
	"github.com/grahambrooks/codemap/internal/graph"
	"github.com/grahambrooks/codemap/internal/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerContextTool()
	s.registerSearchTool()
	s.registerGraphTools()
	s.registerLookupTools()
	s.registerIndexTools()
}

func (s *Server) registerContextTool() {
	s.addTool(&mcp.Tool{
		Name: "context",
		Description: "Build task-focused context: extract keywords from a task description, " +
			"find matching entry-point symbols, expand their calls/called-by neighborhood, and " +
			"optionally attach source code slices. Use this first when you don't yet know which " +
			"symbol names are relevant.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"task": {"type": "string", "description": "Free-form description of the work, e.g. 'fix the race in CalculateTotal'"},
				"max_nodes": {"type": "integer", "description": "Total entry-point + related node budget (default 20)"},
				"include_code": {"type": "boolean", "description": "Attach source code slices for entry points (default true)"},
				"max_code_blocks": {"type": "integer", "description": "Maximum number of code blocks to attach (default 5)"},
				"max_block_size": {"type": "integer", "description": "Maximum bytes per code block before truncation (default 1500)"},
				"depth": {"type": "integer", "description": "Neighborhood-expansion hops (default 1)"}
			},
			"required": ["task"]
		}`),
	}, s.handleContext)
}

func (s *Server) registerSearchTool() {
	s.addTool(&mcp.Tool{
		Name:        "search",
		Description: "Prefix-search symbol names across the indexed graph. Matches are case-insensitive and ordered by (name length, name).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Name prefix to search for"},
				"kind": {"type": "string", "description": "Restrict to one node kind, e.g. 'function', 'class'"},
				"limit": {"type": "integer", "description": "Maximum matches (default 20)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearch)
}

func (s *Server) registerGraphTools() {
	s.addTool(&mcp.Tool{
		Name:        "callers",
		Description: "List the direct callers of a symbol by exact name.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"symbol": {"type": "string", "description": "Exact symbol name"},
				"limit": {"type": "integer", "description": "Maximum results (default 20)"}
			},
			"required": ["symbol"]
		}`),
	}, s.handleCallers)

	s.addTool(&mcp.Tool{
		Name:        "callees",
		Description: "List what a symbol directly calls, by exact name.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"symbol": {"type": "string", "description": "Exact symbol name"},
				"limit": {"type": "integer", "description": "Maximum results (default 20)"}
			},
			"required": ["symbol"]
		}`),
	}, s.handleCallees)

	s.addTool(&mcp.Tool{
		Name: "impact",
		Description: "Analyze the transitive caller impact of a symbol: direct callers at depth 0, " +
			"indirect callers at greater depths, bounded by a BFS depth limit.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"symbol": {"type": "string", "description": "Exact symbol name"},
				"depth": {"type": "integer", "description": "Maximum BFS depth (default 3)"}
			},
			"required": ["symbol"]
		}`),
	}, s.handleImpact)
}

func (s *Server) registerLookupTools() {
	s.addTool(&mcp.Tool{
		Name:        "definition",
		Description: "Look up a symbol's definition: kind, location, signature, visibility, and docstring.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"symbol": {"type": "string", "description": "Exact symbol name"}
			},
			"required": ["symbol"]
		}`),
	}, s.handleDefinition)

	s.addTool(&mcp.Tool{
		Name:        "file",
		Description: "List every node declared in a file, ordered by start line.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Project-root-relative file path"}
			},
			"required": ["path"]
		}`),
	}, s.handleFile)

	s.addTool(&mcp.Tool{
		Name: "references",
		Description: "List resolved call-site references to a symbol: each caller name plus the " +
			"file/line/column of the call that was resolved to it.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"symbol": {"type": "string", "description": "Exact symbol name"},
				"limit": {"type": "integer", "description": "Maximum references (default 50)"}
			},
			"required": ["symbol"]
		}`),
	}, s.handleReferences)

	s.addTool(&mcp.Tool{
		Name:        "node",
		Description: "Fetch a single node's full record by store-assigned id.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Node id"}
			},
			"required": ["id"]
		}`),
	}, s.handleNode)
}

func (s *Server) registerIndexTools() {
	s.addTool(&mcp.Tool{
		Name:        "reindex",
		Description: "Re-run the indexer against the current project root. Unchanged files are skipped via the content-hash gate.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleReindex)

	s.addTool(&mcp.Tool{
		Name:        "status",
		Description: "Report file/node/edge counts, indexed byte size, and per-language/per-kind histograms.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleStatus)
}

func (s *Server) handleContext(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	task := getStringArg(args, "task")
	if task == "" {
		return errResult("task is required"), nil
	}
	opts := contextbuild.DefaultOptions()
	opts.MaxNodes = getIntArg(args, "max_nodes", opts.MaxNodes)
	opts.IncludeCode = getBoolArg(args, "include_code", opts.IncludeCode)
	opts.MaxCodeBlocks = getIntArg(args, "max_code_blocks", opts.MaxCodeBlocks)
	opts.MaxBlockSize = getIntArg(args, "max_block_size", opts.MaxBlockSize)
	opts.Depth = getIntArg(args, "depth", opts.Depth)

	result, err := contextbuild.BuildContext(s.db, s.root, task, opts)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(result), nil
}

func (s *Server) handleSearch(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	query := getStringArg(args, "query")
	limit := getIntArg(args, "limit", 20)

	var kindPtr *model.Kind
	if k := getStringArg(args, "kind"); k != "" {
		kind := model.Kind(k)
		kindPtr = &kind
	}

	nodes, err := s.db.SearchNodes(query, kindPtr, limit)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"query": query, "total": len(nodes), "results": nodes}), nil
}

func (s *Server) handleCallers(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	symbol := getStringArg(args, "symbol")
	limit := getIntArg(args, "limit", 20)

	callers, err := graph.FindCallers(s.db, symbol, limit)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"symbol": symbol, "total": len(callers), "callers": callers}), nil
}

func (s *Server) handleCallees(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	symbol := getStringArg(args, "symbol")
	limit := getIntArg(args, "limit", 20)

	callees, err := graph.FindCallees(s.db, symbol, limit)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"symbol": symbol, "total": len(callees), "callees": callees}), nil
}

func (s *Server) handleImpact(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	symbol := getStringArg(args, "symbol")
	depth := getIntArg(args, "depth", 3)

	result, err := graph.AnalyzeImpact(s.db, symbol, depth)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(result), nil
}

func (s *Server) handleDefinition(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	symbol := getStringArg(args, "symbol")

	node, err := s.db.FindNodeByName(symbol)
	if errors.Is(err, errs.ErrNotFound) {
		return jsonResult(map[string]any{"found": false, "symbol": symbol, "message": "not found"}), nil
	}
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"found": true, "node": node}), nil
}

func (s *Server) handleFile(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")

	nodes, err := s.db.GetNodesByFile(path)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": path, "total": len(nodes), "nodes": nodes}), nil
}

// referenceSite is one resolved call-site reference to a symbol, per
// spec.md §6's "references" tool (a SUPPLEMENTED FEATURES addition over
// the distilled spec — see SPEC_FULL.md).
type referenceSite struct {
	CallerName string `json:"caller_name"`
	CallerID   int64  `json:"caller_id"`
	FilePath   string `json:"file_path"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
}

func (s *Server) handleReferences(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	symbol := getStringArg(args, "symbol")
	limit := getIntArg(args, "limit", 50)

	target, err := s.db.FindNodeByName(symbol)
	if errors.Is(err, errs.ErrNotFound) {
		return jsonResult(map[string]any{"symbol": symbol, "total": 0, "references": []referenceSite{}}), nil
	}
	if err != nil {
		return errResult(err.Error()), nil
	}

	edges, err := s.db.GetIncomingEdges(target.ID)
	if err != nil {
		return errResult(err.Error()), nil
	}

	var sites []referenceSite
	for _, e := range edges {
		if e.Kind != model.EdgeCalls {
			continue
		}
		if len(sites) >= limit {
			break
		}
		caller, err := s.db.GetNode(e.SourceID)
		if err != nil {
			continue
		}
		sites = append(sites, referenceSite{
			CallerName: caller.Name,
			CallerID:   caller.ID,
			FilePath:   e.FilePath,
			Line:       e.Line,
			Column:     e.Column,
		})
	}
	return jsonResult(map[string]any{"symbol": symbol, "total": len(sites), "references": sites}), nil
}

func (s *Server) handleNode(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	id := int64(getIntArg(args, "id", 0))

	node, err := s.db.GetNode(id)
	if errors.Is(err, errs.ErrNotFound) {
		return jsonResult(map[string]any{"found": false, "id": id, "message": "not found"}), nil
	}
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"found": true, "node": node}), nil
}

func (s *Server) handleReindex(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.reindex()
	if err != nil {
		return errResult(fmt.Sprintf("reindex %s: %v", s.root, err)), nil
	}
	return jsonResult(stats), nil
}

func (s *Server) handleStatus(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.db.GetStats()
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(stats), nil
}
