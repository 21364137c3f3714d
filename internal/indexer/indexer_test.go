package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grahambrooks/codemap/internal/store"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestIndexCrossFileResolution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file1.rs", "fn shared_helper() {}\n")
	writeFile(t, dir, "file2.rs", "fn caller() { shared_helper(); }\n")

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	stats, err := Index(db, Config{Root: dir})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if stats.Files != 2 {
		t.Errorf("expected 2 files, got %d", stats.Files)
	}
	if stats.ResolvedRefs != 1 {
		t.Errorf("expected 1 resolved ref, got %d", stats.ResolvedRefs)
	}

	helper, err := db.FindNodeByName("shared_helper")
	if err != nil {
		t.Fatalf("FindNodeByName: %v", err)
	}
	callers, err := db.GetCallers(helper.ID, 10)
	if err != nil {
		t.Fatalf("GetCallers: %v", err)
	}
	if len(callers) != 1 || callers[0].Name != "caller" {
		t.Fatalf("expected caller as the sole caller of shared_helper, got %v", callers)
	}
}

func TestIndexSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\nfunc A() {}\n")

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	if _, err := Index(db, Config{Root: dir}); err != nil {
		t.Fatalf("Index (first pass): %v", err)
	}
	stats, err := Index(db, Config{Root: dir})
	if err != nil {
		t.Fatalf("Index (second pass): %v", err)
	}
	if stats.Skipped != 1 {
		t.Errorf("expected the unchanged file to be skipped, got skipped=%d", stats.Skipped)
	}
	if stats.Files != 0 {
		t.Errorf("expected no files reindexed, got %d", stats.Files)
	}
}

func TestIndexExcludesVendorDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "vendor", "pkg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "vendor", "pkg"), "dep.go", "package pkg\nfunc Dep() {}\n")
	writeFile(t, dir, "main.go", "package main\nfunc main() {}\n")

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	stats, err := Index(db, Config{Root: dir})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if stats.Files != 1 {
		t.Errorf("expected vendor/ to be excluded, leaving 1 file, got %d", stats.Files)
	}
}

func TestIndexSkipsUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "just some notes")
	writeFile(t, dir, "main.go", "package main\nfunc main() {}\n")

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	stats, err := Index(db, Config{Root: dir})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if stats.Files != 1 {
		t.Errorf("expected only main.go indexed, got %d files", stats.Files)
	}
	if stats.Errors != 0 {
		t.Errorf("unsupported extensions should be silently skipped, not errored; got %d errors", stats.Errors)
	}
}
