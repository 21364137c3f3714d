package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grahambrooks/codemap/internal/store"
)

// resolveRoot applies spec.md §6's precedence: an explicit positional
// path argument, then the ROOT environment variable, then the current
// directory.
func resolveRoot(arg string) (string, error) {
	root := arg
	if root == "" {
		root = os.Getenv("ROOT")
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	return abs, nil
}

// openStoreForRoot opens the on-disk store at <root>/.codemap/index.db,
// or an ephemeral in-memory store when IN_MEMORY=1 is set.
func openStoreForRoot(root string) (*store.Store, error) {
	if os.Getenv("IN_MEMORY") == "1" {
		return store.OpenMemory()
	}
	dir := filepath.Join(root, ".codemap")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return store.OpenPath(filepath.Join(dir, "index.db"))
}
