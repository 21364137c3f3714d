// Package graph implements the traversal operations of spec.md §4.6 —
// find_callers/find_callees, analyze_impact, extract_subgraph, and
// find_related — on top of store.Store.
//
// Grounded on the teacher's internal/store/traverse.go BFS-with-visited-set
// shape and internal/store/impact.go's hop-to-bucket aggregation, adapted
// from the teacher's RiskLevel (CRITICAL/HIGH/MEDIUM/LOW) framing to the
// spec's direct/indirect framing (see DESIGN.md).
package graph

import (
	"fmt"

	"github.com/grahambrooks/codemap/internal/model"
	"github.com/grahambrooks/codemap/internal/store"
)

// perFrontierLimit bounds how many neighbors a single BFS frontier node
// contributes, per spec.md §4.6.
const perFrontierLimit = 100

// FindCallers looks up name and returns its direct callers, capped at
// limit. Returns an empty slice, not an error, if name is not found.
func FindCallers(db *store.Store, name string, limit int) ([]*model.Node, error) {
	target, err := db.FindNodeByName(name)
	if err != nil {
		return nil, nil
	}
	return db.GetCallers(target.ID, limit)
}

// FindCallees looks up name and returns what it directly calls, capped
// at limit. Returns an empty slice, not an error, if name is not found.
func FindCallees(db *store.Store, name string, limit int) ([]*model.Node, error) {
	source, err := db.FindNodeByName(name)
	if err != nil {
		return nil, nil
	}
	return db.GetCallees(source.ID, limit)
}
