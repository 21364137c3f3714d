package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/grahambrooks/codemap/internal/model"
)

const edgeColumns = `id, source_id, target_id, kind, file_path, line, column`

// InsertEdge inserts an edge and returns its store-assigned id. Duplicate
// calls edges (same endpoints, different call sites) are intentionally
// permitted — see spec.md §9's multiset treatment.
func (s *Store) InsertEdge(e *model.Edge) (int64, error) {
	res, err := s.q.Exec(`
		INSERT INTO edges (source_id, target_id, kind, file_path, line, column)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.SourceID, e.TargetID, string(e.Kind), nullableString(e.FilePath), nullableInt(e.Line), nullableInt(e.Column))
	if err != nil {
		return 0, fmt.Errorf("insert edge %d->%d: %w", e.SourceID, e.TargetID, err)
	}
	return res.LastInsertId()
}

// GetCallers returns nodes with an outgoing calls edge into target,
// capped at limit.
func (s *Store) GetCallers(target int64, limit int) ([]*model.Node, error) {
	rows, err := s.q.Query(`
		SELECT `+qualifyColumns("n", nodeColumns)+` FROM nodes n
		JOIN edges e ON e.source_id = n.id
		WHERE e.target_id = ? AND e.kind = ?
		ORDER BY n.id ASC LIMIT ?`, target, string(model.EdgeCalls), limit)
	if err != nil {
		return nil, fmt.Errorf("get callers: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// GetCallees returns nodes targeted by an outgoing calls edge from source,
// capped at limit.
func (s *Store) GetCallees(source int64, limit int) ([]*model.Node, error) {
	rows, err := s.q.Query(`
		SELECT `+qualifyColumns("n", nodeColumns)+` FROM nodes n
		JOIN edges e ON e.target_id = n.id
		WHERE e.source_id = ? AND e.kind = ?
		ORDER BY n.id ASC LIMIT ?`, source, string(model.EdgeCalls), limit)
	if err != nil {
		return nil, fmt.Errorf("get callees: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// GetOutgoingEdges returns every edge, of any kind, whose source is id.
func (s *Store) GetOutgoingEdges(id int64) ([]*model.Edge, error) {
	rows, err := s.q.Query(`SELECT `+edgeColumns+` FROM edges WHERE source_id=?`, id)
	if err != nil {
		return nil, fmt.Errorf("outgoing edges: %w", err)
	}
	defer rows.Close()
	return scanEdges(rows)
}

// GetIncomingEdges returns every edge, of any kind, whose target is id.
func (s *Store) GetIncomingEdges(id int64) ([]*model.Edge, error) {
	rows, err := s.q.Query(`SELECT `+edgeColumns+` FROM edges WHERE target_id=?`, id)
	if err != nil {
		return nil, fmt.Errorf("incoming edges: %w", err)
	}
	defer rows.Close()
	return scanEdges(rows)
}

// EdgesAmong returns every edge whose source and target are both in ids —
// used by the context builder to assemble the edge set among an entry
// point / related node union.
func (s *Store) EdgesAmong(ids []int64) ([]*model.Edge, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)*2)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	inClause := "(" + joinComma(placeholders) + ")"
	for _, id := range ids {
		args = append(args, id)
	}
	query := fmt.Sprintf(`SELECT %s FROM edges WHERE source_id IN %s AND target_id IN %s`,
		edgeColumns, inClause, inClause)
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("edges among: %w", err)
	}
	defer rows.Close()
	return scanEdges(rows)
}

func joinComma(ss []string) string {
	out := ss[0]
	for _, s := range ss[1:] {
		out += "," + s
	}
	return out
}

func qualifyColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	qualified := make([]string, len(parts))
	for i, p := range parts {
		qualified[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(qualified, ", ")
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func scanEdges(rows *sql.Rows) ([]*model.Edge, error) {
	var out []*model.Edge
	for rows.Next() {
		var e model.Edge
		var kind string
		var filePath sql.NullString
		var line, column sql.NullInt64
		if err := rows.Scan(&e.ID, &e.SourceID, &e.TargetID, &kind, &filePath, &line, &column); err != nil {
			return nil, fmt.Errorf("scan edge row: %w", err)
		}
		e.Kind = model.EdgeKind(kind)
		e.FilePath = filePath.String
		e.Line = int(line.Int64)
		e.Column = int(column.Int64)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edges: %w", err)
	}
	return out, nil
}
