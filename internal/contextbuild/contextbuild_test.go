package contextbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grahambrooks/codemap/internal/indexer"
	"github.com/grahambrooks/codemap/internal/store"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestBuildContextFindsEntryPointsFromTaskKeywords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "billing.go", `package billing

func CalculateTotal(items []int) int {
	return sumItems(items)
}

func sumItems(items []int) int {
	total := 0
	for _, i := range items {
		total += i
	}
	return total
}
`)

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	if _, err := indexer.Index(db, indexer.Config{Root: dir}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	result, err := BuildContext(db, dir, "fix the CalculateTotal function", DefaultOptions())
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}

	found := false
	for _, n := range result.EntryPoints {
		if n.Name == "CalculateTotal" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CalculateTotal among entry points, got %v", result.EntryPoints)
	}

	relatedHasSumItems := false
	for _, r := range result.Related {
		if r.Node.Name == "sumItems" {
			relatedHasSumItems = true
		}
	}
	if !relatedHasSumItems {
		t.Errorf("expected sumItems in the related neighborhood via the calls edge")
	}
}

func TestBuildContextAssemblesCodeBlocks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "greet.go", "package greet\n\nfunc Greet() string {\n\treturn \"hi\"\n}\n")

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	if _, err := indexer.Index(db, indexer.Config{Root: dir}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	opts := DefaultOptions()
	result, err := BuildContext(db, dir, "update the Greet function", opts)
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}
	if len(result.CodeBlocks) == 0 {
		t.Fatalf("expected at least one code block")
	}
	if result.CodeBlocks[0].Node.Name != "Greet" {
		t.Errorf("expected the Greet code block, got %s", result.CodeBlocks[0].Node.Name)
	}
}

func TestBuildContextSkipsCodeWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "greet.go", "package greet\n\nfunc Greet() string {\n\treturn \"hi\"\n}\n")

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	if _, err := indexer.Index(db, indexer.Config{Root: dir}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	opts := DefaultOptions()
	opts.IncludeCode = false
	result, err := BuildContext(db, dir, "update the Greet function", opts)
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}
	if len(result.CodeBlocks) != 0 {
		t.Errorf("expected no code blocks when IncludeCode is false, got %d", len(result.CodeBlocks))
	}
}
