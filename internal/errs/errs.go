// Package errs defines the sentinel error values returned across codemap's
// packages, so callers can use errors.Is instead of string matching.
package errs

import "errors"

var (
	// ErrUnsupportedLanguage is returned when a file extension has no
	// registered lang.Spec.
	ErrUnsupportedLanguage = errors.New("codemap: unsupported language")

	// ErrParseFailed is returned when tree-sitter yields no parse tree (or
	// no root node) for a file. A tree that merely contains syntax errors
	// is still extracted.
	ErrParseFailed = errors.New("codemap: parse failed")

	// ErrNotFound is returned by store lookups (node, file) that find no
	// matching row.
	ErrNotFound = errors.New("codemap: not found")

	// ErrNoRoot names the missing-project-root condition. No codemap
	// package currently returns it: root resolution falls back to the
	// current directory.
	ErrNoRoot = errors.New("codemap: no project root")

	// ErrClosed names the closed-store condition. The store does not track
	// whether it has been closed; operations after Close fail with the
	// database/sql error rather than this value.
	ErrClosed = errors.New("codemap: store is closed")
)
