package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/grahambrooks/codemap/internal/indexer"
	"github.com/grahambrooks/codemap/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "billing.go"),
		[]byte("package billing\n\nfunc CalculateTotal() int {\n\treturn helper()\n}\n\nfunc helper() int {\n\treturn 1\n}\n"),
		0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := indexer.Index(db, indexer.Config{Root: dir}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	return NewServer(db, dir), dir
}

func callToolJSON(t *testing.T, srv *Server, name string, args string) map[string]any {
	t.Helper()
	result, err := srv.CallTool(context.Background(), name, json.RawMessage(args))
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) returned an error result: %v", name, result.Content)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent, got %T", name, result.Content[0])
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(text.Text), &data); err != nil {
		t.Fatalf("CallTool(%s): unmarshal result: %v", name, err)
	}
	return data
}

func TestToolNamesListsAllOperations(t *testing.T) {
	srv, _ := newTestServer(t)
	want := []string{
		"callees", "callers", "context", "definition", "file", "impact",
		"node", "reindex", "references", "search", "status",
	}
	got := srv.ToolNames()
	if len(got) != len(want) {
		t.Fatalf("ToolNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ToolNames()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSearchToolFindsPrefixMatch(t *testing.T) {
	srv, _ := newTestServer(t)
	data := callToolJSON(t, srv, "search", `{"query": "Calc"}`)
	if int(data["total"].(float64)) != 1 {
		t.Fatalf("expected 1 match, got %v", data["total"])
	}
}

func TestCallersToolFindsDirectCaller(t *testing.T) {
	srv, _ := newTestServer(t)
	data := callToolJSON(t, srv, "callers", `{"symbol": "helper"}`)
	callers := data["callers"].([]any)
	if len(callers) != 1 {
		t.Fatalf("expected 1 caller, got %d", len(callers))
	}
	caller := callers[0].(map[string]any)
	if caller["Name"] != "CalculateTotal" {
		t.Fatalf("expected CalculateTotal as caller, got %v", caller["Name"])
	}
}

func TestDefinitionToolReportsNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	data := callToolJSON(t, srv, "definition", `{"symbol": "NoSuchSymbol"}`)
	if data["found"] != false {
		t.Fatalf("expected found=false, got %v", data["found"])
	}
}

func TestStatusToolReportsCounts(t *testing.T) {
	srv, _ := newTestServer(t)
	data := callToolJSON(t, srv, "status", `{}`)
	if int(data["NodeCount"].(float64)) == 0 {
		t.Fatalf("expected a nonzero node count, got %v", data["NodeCount"])
	}
}

func TestReindexToolSkipsUnchangedFiles(t *testing.T) {
	srv, _ := newTestServer(t)
	data := callToolJSON(t, srv, "reindex", `{}`)
	if int(data["Skipped"].(float64)) != 1 {
		t.Fatalf("expected the unchanged file to be skipped, got %v", data["Skipped"])
	}
}
