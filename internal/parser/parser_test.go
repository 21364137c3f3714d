package parser

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/grahambrooks/codemap/internal/model"
)

func TestParseGo(t *testing.T) {
	source := []byte(`package main

func Hello() string {
	return "hello"
}

func Add(a, b int) int {
	return a + b
}
`)
	tree, err := Parse(model.LanguageGo, source)
	if err != nil {
		t.Fatalf("Parse Go: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		t.Fatal("root node is nil")
	}

	var funcCount int
	Walk(root, func(n *tree_sitter.Node) bool {
		if n.Kind() == "function_declaration" {
			funcCount++
		}
		return true
	})
	if funcCount != 2 {
		t.Errorf("expected 2 function_declarations, got %d", funcCount)
	}
}

func TestParsePython(t *testing.T) {
	source := []byte(`def greet(name):
    return f"Hello, {name}"

class MyClass:
    def method(self):
        pass
`)
	tree, err := Parse(model.LanguagePython, source)
	if err != nil {
		t.Fatalf("Parse Python: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	var funcCount, classCount int
	Walk(root, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			funcCount++
		case "class_definition":
			classCount++
		}
		return true
	})
	if funcCount != 2 {
		t.Errorf("expected 2 function_definitions, got %d", funcCount)
	}
	if classCount != 1 {
		t.Errorf("expected 1 class_definition, got %d", classCount)
	}
}

func TestParseRust(t *testing.T) {
	source := []byte(`struct Point { x: i32, y: i32 }

impl Point {
    fn new(x: i32, y: i32) -> Point {
        Point { x, y }
    }
}

fn main() {
    let p = Point::new(1, 2);
}
`)
	tree, err := Parse(model.LanguageRust, source)
	if err != nil {
		t.Fatalf("Parse Rust: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	var structCount, fnCount int
	Walk(root, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "struct_item":
			structCount++
		case "function_item":
			fnCount++
		}
		return true
	})
	if structCount != 1 {
		t.Errorf("expected 1 struct_item, got %d", structCount)
	}
	if fnCount != 2 {
		t.Errorf("expected 2 function_items, got %d", fnCount)
	}
}

func TestParseTypeScript(t *testing.T) {
	source := []byte(`interface Greeter {
    greet(name: string): string;
}

class EnglishGreeter implements Greeter {
    greet(name: string): string {
        return "Hello, " + name;
    }
}
`)
	tree, err := Parse(model.LanguageTypeScript, source)
	if err != nil {
		t.Fatalf("Parse TypeScript: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	var interfaceCount, classCount int
	Walk(root, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "interface_declaration":
			interfaceCount++
		case "class_declaration":
			classCount++
		}
		return true
	})
	if interfaceCount != 1 {
		t.Errorf("expected 1 interface_declaration, got %d", interfaceCount)
	}
	if classCount != 1 {
		t.Errorf("expected 1 class_declaration, got %d", classCount)
	}
}

func TestAllLanguagesLoad(t *testing.T) {
	for _, l := range model.AllLanguages() {
		if _, err := GetLanguage(l); err != nil {
			t.Errorf("GetLanguage(%s): %v", l, err)
		}
	}
}

func TestNodeText(t *testing.T) {
	source := []byte(`package main

func Hello() string {
	return "hello"
}
`)
	tree, err := Parse(model.LanguageGo, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	Walk(root, func(n *tree_sitter.Node) bool {
		if n.Kind() == "function_declaration" {
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				t.Error("function has no name node")
				return false
			}
			name := NodeText(nameNode, source)
			if name != "Hello" {
				t.Errorf("expected Hello, got %s", name)
			}
			return false
		}
		return true
	})
}

func TestParseUnsupportedLanguage(t *testing.T) {
	if _, err := Parse(model.LanguageUnknown, []byte("x")); err == nil {
		t.Error("expected error for unsupported language")
	}
}
