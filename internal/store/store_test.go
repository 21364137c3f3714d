package store

import (
	"errors"
	"testing"
	"time"

	"github.com/grahambrooks/codemap/internal/errs"
	"github.com/grahambrooks/codemap/internal/model"
)

func TestOpenMemory(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	s.Close()
}

func mustFile(t *testing.T, s *Store, path, hash string) {
	t.Helper()
	now := time.Now().UTC()
	if err := s.UpsertFile(&model.FileRecord{
		Path: path, ContentHash: hash, Language: model.LanguageGo,
		Size: 100, ModifiedAt: now, IndexedAt: now,
	}); err != nil {
		t.Fatalf("UpsertFile(%s): %v", path, err)
	}
}

func TestNodeCRUD(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	mustFile(t, s, "main.go", "hash1")

	n := &model.Node{
		Kind: model.KindFunction, Name: "Foo", QualifiedName: "Foo",
		FilePath: "main.go", StartLine: 10, EndLine: 20,
		Signature: "func Foo(x int) error", Visibility: model.VisibilityPublic,
		Language: model.LanguageGo,
	}
	id, err := s.InsertNode(n)
	if err != nil {
		t.Fatalf("InsertNode: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	found, err := s.GetNode(id)
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	if found.Name != "Foo" {
		t.Errorf("expected Foo, got %s", found.Name)
	}
	if found.Signature != "func Foo(x int) error" {
		t.Errorf("unexpected signature: %v", found.Signature)
	}

	byName, err := s.FindNodeByName("Foo")
	if err != nil {
		t.Fatalf("FindNodeByName: %v", err)
	}
	if byName.ID != id {
		t.Errorf("expected id %d, got %d", id, byName.ID)
	}

	byFile, err := s.GetNodesByFile("main.go")
	if err != nil {
		t.Fatalf("GetNodesByFile: %v", err)
	}
	if len(byFile) != 1 {
		t.Fatalf("expected 1 node, got %d", len(byFile))
	}
}

func TestGetNodeNotFound(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	if _, err := s.GetNode(999); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchNodesOrdering(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	mustFile(t, s, "a.go", "h")
	for _, name := range []string{"fetchAll", "fetch", "fetchOne"} {
		if _, err := s.InsertNode(&model.Node{
			Kind: model.KindFunction, Name: name, FilePath: "a.go", Language: model.LanguageGo,
		}); err != nil {
			t.Fatalf("InsertNode(%s): %v", name, err)
		}
	}

	results, err := s.SearchNodes("fetch", nil, 10)
	if err != nil {
		t.Fatalf("SearchNodes: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(results))
	}
	if results[0].Name != "fetch" {
		t.Errorf("expected shortest match first, got %s", results[0].Name)
	}
}

func TestCallerCalleeAgreement(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	mustFile(t, s, "a.go", "h")
	a, _ := s.InsertNode(&model.Node{Kind: model.KindFunction, Name: "a", FilePath: "a.go", Language: model.LanguageGo})
	b, _ := s.InsertNode(&model.Node{Kind: model.KindFunction, Name: "b", FilePath: "a.go", Language: model.LanguageGo})
	if _, err := s.InsertEdge(&model.Edge{SourceID: a, TargetID: b, Kind: model.EdgeCalls}); err != nil {
		t.Fatalf("InsertEdge: %v", err)
	}

	callers, err := s.GetCallers(b, 10)
	if err != nil {
		t.Fatalf("GetCallers: %v", err)
	}
	if len(callers) != 1 || callers[0].ID != a {
		t.Fatalf("expected [a] as caller of b, got %v", callers)
	}

	callees, err := s.GetCallees(a, 10)
	if err != nil {
		t.Fatalf("GetCallees: %v", err)
	}
	if len(callees) != 1 || callees[0].ID != b {
		t.Fatalf("expected [b] as callee of a, got %v", callees)
	}
}

func TestNeedsReindex(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	mustFile(t, s, "a.go", "H1")

	needs, err := s.NeedsReindex("a.go", "H1")
	if err != nil {
		t.Fatalf("NeedsReindex: %v", err)
	}
	if needs {
		t.Error("expected false for unchanged hash")
	}

	needs, err = s.NeedsReindex("a.go", "H2")
	if err != nil {
		t.Fatalf("NeedsReindex: %v", err)
	}
	if !needs {
		t.Error("expected true for changed hash")
	}

	needs, err = s.NeedsReindex("new.go", "H1")
	if err != nil {
		t.Fatalf("NeedsReindex: %v", err)
	}
	if !needs {
		t.Error("expected true for a file never indexed before")
	}
}

func TestDeleteFileCascade(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	mustFile(t, s, "a.go", "h")
	a, _ := s.InsertNode(&model.Node{Kind: model.KindFunction, Name: "a", FilePath: "a.go", Language: model.LanguageGo})
	b, _ := s.InsertNode(&model.Node{Kind: model.KindFunction, Name: "b", FilePath: "a.go", Language: model.LanguageGo})
	if _, err := s.InsertEdge(&model.Edge{SourceID: a, TargetID: b, Kind: model.EdgeCalls}); err != nil {
		t.Fatalf("InsertEdge: %v", err)
	}

	if err := s.DeleteFile("a.go"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}

	if _, err := s.GetFile("a.go"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected file row gone, got %v", err)
	}
	nodes, err := s.GetNodesByFile("a.go")
	if err != nil {
		t.Fatalf("GetNodesByFile: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("expected zero nodes after delete, got %d", len(nodes))
	}
	edges, err := s.GetOutgoingEdges(a)
	if err != nil {
		t.Fatalf("GetOutgoingEdges: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("expected zero edges after delete, got %d", len(edges))
	}
}

func TestResolveReferences(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	mustFile(t, s, "a.go", "h")
	caller, _ := s.InsertNode(&model.Node{Kind: model.KindFunction, Name: "caller", FilePath: "a.go", Language: model.LanguageGo})
	if _, err := s.InsertNode(&model.Node{Kind: model.KindFunction, Name: "shared_helper", FilePath: "a.go", Language: model.LanguageGo}); err != nil {
		t.Fatalf("InsertNode: %v", err)
	}
	if _, err := s.InsertUnresolvedRef(&model.UnresolvedReference{
		SourceNodeID: caller, ReferenceName: "shared_helper", Kind: model.EdgeCalls, FilePath: "a.go", Line: 1,
	}); err != nil {
		t.Fatalf("InsertUnresolvedRef: %v", err)
	}

	resolved, err := s.ResolveReferences()
	if err != nil {
		t.Fatalf("ResolveReferences: %v", err)
	}
	if resolved != 1 {
		t.Fatalf("expected 1 resolved ref, got %d", resolved)
	}

	refs, err := s.GetUnresolvedRefs()
	if err != nil {
		t.Fatalf("GetUnresolvedRefs: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected empty unresolved_refs after resolve, got %d", len(refs))
	}

	callers, err := s.GetCallers(caller+1, 10)
	if err != nil {
		t.Fatalf("GetCallers: %v", err)
	}
	if len(callers) != 1 || callers[0].ID != caller {
		t.Fatalf("expected caller resolved via name lookup, got %v", callers)
	}
}
