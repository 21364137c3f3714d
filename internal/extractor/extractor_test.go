package extractor

import (
	"testing"

	"github.com/grahambrooks/codemap/internal/model"
)

func findByName(nodes []*model.Node, name string) *model.Node {
	for _, n := range nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

func countRefs(refs []*model.UnresolvedReference, name string) int {
	n := 0
	for _, r := range refs {
		if r.ReferenceName == name {
			n++
		}
	}
	return n
}

func TestExtractRustSelfCallGraph(t *testing.T) {
	src := []byte(`fn main(){ helper(); }
fn helper(){ utility(); }
fn utility(){}
`)
	res, err := Extract("main.rs", src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Nodes) < 4 {
		t.Fatalf("expected >= 4 nodes (file + 3 functions), got %d", len(res.Nodes))
	}
	main := findByName(res.Nodes, "main")
	helper := findByName(res.Nodes, "helper")
	utility := findByName(res.Nodes, "utility")
	if main == nil || helper == nil || utility == nil {
		t.Fatalf("missing expected functions: main=%v helper=%v utility=%v", main, helper, utility)
	}
	if main.Kind != model.KindFunction {
		t.Errorf("main kind = %s, want function", main.Kind)
	}

	if countRefs(res.UnresolvedRefs, "helper") != 1 {
		t.Errorf("expected 1 unresolved ref to helper, got %d", countRefs(res.UnresolvedRefs, "helper"))
	}
	if countRefs(res.UnresolvedRefs, "utility") != 1 {
		t.Errorf("expected 1 unresolved ref to utility, got %d", countRefs(res.UnresolvedRefs, "utility"))
	}

	var helperRefSource int64 = -1
	for _, r := range res.UnresolvedRefs {
		if r.ReferenceName == "helper" {
			helperRefSource = r.SourceNodeID
		}
	}
	if helperRefSource != main.ID {
		t.Errorf("helper() call attributed to node %d, want main's id %d", helperRefSource, main.ID)
	}
}

func TestExtractRustImplMethodPromotion(t *testing.T) {
	src := []byte(`struct Point { x: i32, y: i32 }

impl Point {
    fn new(x: i32, y: i32) -> Point {
        Point { x, y }
    }
}
`)
	res, err := Extract("point.rs", src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	newFn := findByName(res.Nodes, "new")
	if newFn == nil {
		t.Fatal("expected a node named new")
	}
	if newFn.Kind != model.KindMethod {
		t.Errorf("new kind = %s, want method (impl-block promotion)", newFn.Kind)
	}
}

func TestExtractTypeScriptDeclarations(t *testing.T) {
	src := []byte(`interface User {
    id: number;
}

class UserService {
    getUser(id: number): User {
        return { id };
    }
}

function main() {
    const svc = new UserService();
}
`)
	res, err := Extract("svc.ts", src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	user := findByName(res.Nodes, "User")
	if user == nil || user.Kind != model.KindInterface {
		t.Fatalf("expected interface User, got %v", user)
	}
	svc := findByName(res.Nodes, "UserService")
	if svc == nil || svc.Kind != model.KindClass {
		t.Fatalf("expected class UserService, got %v", svc)
	}
	main := findByName(res.Nodes, "main")
	if main == nil || main.Kind != model.KindFunction {
		t.Fatalf("expected function main, got %v", main)
	}
	getUser := findByName(res.Nodes, "getUser")
	if getUser == nil || getUser.Kind != model.KindMethod {
		t.Fatalf("expected method getUser, got %v", getUser)
	}
}

func TestExtractPythonMethods(t *testing.T) {
	src := []byte(`class Calculator:
    def __init__(self):
        self.total = 0

    def add(self, x):
        self.total += x
        return self.total
`)
	res, err := Extract("calc.py", src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	calc := findByName(res.Nodes, "Calculator")
	if calc == nil || calc.Kind != model.KindClass {
		t.Fatalf("expected class Calculator, got %v", calc)
	}
	add := findByName(res.Nodes, "add")
	if add == nil {
		t.Fatal("expected a node named add")
	}
	if add.Kind != model.KindMethod {
		t.Errorf("add kind = %s, want method", add.Kind)
	}
	if add.QualifiedName != "Calculator::add" {
		t.Errorf("add qualified name = %q, want Calculator::add", add.QualifiedName)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	if _, err := Extract("notes.txt", []byte("hello")); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestExtractDocstring(t *testing.T) {
	src := []byte(`// Add returns the sum of a and b.
func Add(a, b int) int {
	return a + b
}
`)
	res, err := Extract("math.go", src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	add := findByName(res.Nodes, "Add")
	if add == nil {
		t.Fatal("expected a node named Add")
	}
	if add.Docstring != "Add returns the sum of a and b." {
		t.Errorf("docstring = %q", add.Docstring)
	}
	if add.Visibility != model.VisibilityPublic {
		t.Errorf("visibility = %s, want public (Go default)", add.Visibility)
	}
}

func TestExtractSignatureTruncation(t *testing.T) {
	src := []byte(`func VeryLongFunctionSignature(argumentNumberOne, argumentNumberTwo, argumentNumberThree, argumentNumberFour, argumentNumberFive, argumentNumberSix, argumentNumberSeven, argumentNumberEight, argumentNumberNine, argumentNumberTen string) string {
	return ""
}
`)
	res, err := Extract("long.go", src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	fn := findByName(res.Nodes, "VeryLongFunctionSignature")
	if fn == nil {
		t.Fatal("expected a node named VeryLongFunctionSignature")
	}
	if len([]rune(fn.Signature)) > model.MaxSignatureLen+1 {
		t.Errorf("signature too long: %d runes", len([]rune(fn.Signature)))
	}
}
