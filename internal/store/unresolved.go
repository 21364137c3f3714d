package store

import (
	"database/sql"
	"fmt"

	"github.com/grahambrooks/codemap/internal/model"
)

// InsertUnresolvedRef stages a call-site textual reference pending the
// resolve pass.
func (s *Store) InsertUnresolvedRef(u *model.UnresolvedReference) (int64, error) {
	res, err := s.q.Exec(`
		INSERT INTO unresolved_refs (source_node_id, reference_name, kind, file_path, line, column)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.SourceNodeID, u.ReferenceName, string(u.Kind), u.FilePath, u.Line, u.Column)
	if err != nil {
		return 0, fmt.Errorf("insert unresolved ref %s: %w", u.ReferenceName, err)
	}
	return res.LastInsertId()
}

// GetUnresolvedRefs returns every staged reference, across all files.
func (s *Store) GetUnresolvedRefs() ([]*model.UnresolvedReference, error) {
	rows, err := s.q.Query(`SELECT id, source_node_id, reference_name, kind, file_path, line, column FROM unresolved_refs`)
	if err != nil {
		return nil, fmt.Errorf("get unresolved refs: %w", err)
	}
	defer rows.Close()
	return scanUnresolvedRefs(rows)
}

// ResolveReferences implements spec.md §4.5: for each staged reference,
// look up a node named reference_name (first match — smallest id, the
// same deterministic tie-break FindNodeByName uses) and, if found, insert
// a calls edge carrying the reference site. The unresolved_refs table is
// emptied at the end regardless of how many references resolved.
func (s *Store) ResolveReferences() (int, error) {
	refs, err := s.GetUnresolvedRefs()
	if err != nil {
		return 0, err
	}
	resolved := 0
	for _, ref := range refs {
		target, err := s.FindNodeByName(ref.ReferenceName)
		if err != nil {
			continue
		}
		if _, err := s.InsertEdge(&model.Edge{
			SourceID: ref.SourceNodeID,
			TargetID: target.ID,
			Kind:     ref.Kind,
			FilePath: ref.FilePath,
			Line:     ref.Line,
			Column:   ref.Column,
		}); err != nil {
			return resolved, fmt.Errorf("resolve ref %s: %w", ref.ReferenceName, err)
		}
		resolved++
	}
	if _, err := s.q.Exec(`DELETE FROM unresolved_refs`); err != nil {
		return resolved, fmt.Errorf("clear unresolved refs: %w", err)
	}
	return resolved, nil
}

func scanUnresolvedRefs(rows *sql.Rows) ([]*model.UnresolvedReference, error) {
	var out []*model.UnresolvedReference
	for rows.Next() {
		var u model.UnresolvedReference
		var kind string
		if err := rows.Scan(&u.ID, &u.SourceNodeID, &u.ReferenceName, &kind, &u.FilePath, &u.Line, &u.Column); err != nil {
			return nil, fmt.Errorf("scan unresolved ref row: %w", err)
		}
		u.Kind = model.EdgeKind(kind)
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unresolved refs: %w", err)
	}
	return out, nil
}
