// Package parser wraps tree-sitter parsing: a per-language registry of
// grammars, a sync.Pool of parsers per language to avoid per-file
// allocation, and depth-first traversal helpers.
//
// Adapted from the teacher's internal/parser/parser.go, trimmed to the
// ten languages model.AllLanguages names (the teacher also wires C#, PHP,
// Lua, Scala, and Kotlin grammars that have no home in this spec — see
// DESIGN.md).
package parser

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/grahambrooks/codemap/internal/model"
)

var (
	languagesOnce sync.Once
	languages     map[model.Language]*tree_sitter.Language
	parserPools   map[model.Language]*sync.Pool
)

func initLanguages() {
	languagesOnce.Do(func() {
		jsLang := tree_sitter.NewLanguage(tree_sitter_javascript.Language())
		languages = map[model.Language]*tree_sitter.Language{
			model.LanguagePython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
			model.LanguageJavaScript: jsLang,
			// JSX reuses the JavaScript grammar; it's JSX's author-facing
			// syntax that differs, not its concrete node-type vocabulary.
			model.LanguageJSX:        jsLang,
			model.LanguageTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			model.LanguageTSX:        tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
			model.LanguageGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
			model.LanguageRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
			model.LanguageJava:       tree_sitter.NewLanguage(tree_sitter_java.Language()),
			model.LanguageC:          tree_sitter.NewLanguage(tree_sitter_c.Language()),
			model.LanguageCPP:        tree_sitter.NewLanguage(tree_sitter_cpp.Language()),
		}

		parserPools = make(map[model.Language]*sync.Pool, len(languages))
		for l, tsLang := range languages {
			tsLang := tsLang
			parserPools[l] = &sync.Pool{
				New: func() any {
					p := tree_sitter.NewParser()
					if err := p.SetLanguage(tsLang); err != nil {
						panic(fmt.Sprintf("set language: %v", err))
					}
					return p
				},
			}
		}
	})
}

// GetLanguage returns the tree-sitter Language for a model.Language.
func GetLanguage(l model.Language) (*tree_sitter.Language, error) {
	initLanguages()
	tsLang, ok := languages[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", l)
	}
	return tsLang, nil
}

// Parse parses source code into a tree-sitter AST Tree. The caller must
// call tree.Close() when done. Parsers are pooled per language via
// sync.Pool to avoid per-file allocation.
func Parse(l model.Language, source []byte) (*tree_sitter.Tree, error) {
	initLanguages()

	pool, ok := parserPools[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", l)
	}

	p, _ := pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("failed to get parser for language %s", l)
	}
	tree := p.Parse(source, nil)
	pool.Put(p)

	if tree == nil {
		return nil, fmt.Errorf("parse failed for language %s", l)
	}

	return tree, nil
}

// WalkFunc is called for each node during AST traversal. Return false to
// skip the node's children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk traverses the AST in depth-first order.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// NodeText returns the source text spanned by a node.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
