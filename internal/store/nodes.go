package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/grahambrooks/codemap/internal/errs"
	"github.com/grahambrooks/codemap/internal/model"
)

const sqliteMaxBindBatch = 900

var nodeColumns = `id, kind, name, qualified_name, file_path, start_line, end_line,
	start_column, end_column, signature, visibility, docstring, is_async, is_static, is_exported, language`

// InsertNode inserts a node and returns its store-assigned id.
func (s *Store) InsertNode(n *model.Node) (int64, error) {
	res, err := s.q.Exec(`
		INSERT INTO nodes (kind, name, qualified_name, file_path, start_line, end_line,
			start_column, end_column, signature, visibility, docstring, is_async, is_static, is_exported, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(n.Kind), n.Name, n.QualifiedName, n.FilePath, n.StartLine, n.EndLine,
		n.StartColumn, n.EndColumn, n.Signature, string(n.Visibility), n.Docstring,
		boolToInt(n.IsAsync), boolToInt(n.IsStatic), boolToInt(n.IsExported), string(n.Language))
	if err != nil {
		return 0, fmt.Errorf("insert node %s: %w", n.Name, err)
	}
	return res.LastInsertId()
}

// GetNode returns a node by id, or errs.ErrNotFound.
func (s *Store) GetNode(id int64) (*model.Node, error) {
	row := s.q.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE id=?`, id)
	return scanNode(row)
}

// FindNodeByName returns the first node named name (spec.md's "first
// match, no ordering guarantee" resolved to smallest id — see DESIGN.md).
func (s *Store) FindNodeByName(name string) (*model.Node, error) {
	row := s.q.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE name=? ORDER BY id ASC LIMIT 1`, name)
	return scanNode(row)
}

// SearchNodes returns nodes whose lower-cased name starts with
// lower-cased query, optionally filtered by kind, ordered by
// (length(name), name) ascending and capped at limit.
func (s *Store) SearchNodes(query string, kind *model.Kind, limit int) ([]*model.Node, error) {
	pattern := strings.ToLower(query) + "%"
	sqlQuery := `SELECT ` + nodeColumns + ` FROM nodes WHERE lower(name) LIKE ?`
	args := []any{pattern}
	if kind != nil {
		sqlQuery += ` AND kind=?`
		args = append(args, string(*kind))
	}
	sqlQuery += ` ORDER BY length(name) ASC, name ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.q.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search nodes: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// GetNodesByFile returns all nodes in path, ordered by start_line.
func (s *Store) GetNodesByFile(path string) ([]*model.Node, error) {
	rows, err := s.q.Query(`SELECT `+nodeColumns+` FROM nodes WHERE file_path=? ORDER BY start_line ASC`, path)
	if err != nil {
		return nil, fmt.Errorf("nodes by file %s: %w", path, err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// FindNodesByIDs returns a map of id → *Node for the given ids, batching
// queries to stay under SQLite's bind-variable ceiling.
func (s *Store) FindNodesByIDs(ids []int64) (map[int64]*model.Node, error) {
	out := make(map[int64]*model.Node, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for start := 0; start < len(ids); start += sqliteMaxBindBatch {
		end := start + sqliteMaxBindBatch
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]
		placeholders := make([]string, len(chunk))
		args := make([]any, len(chunk))
		for i, id := range chunk {
			placeholders[i] = "?"
			args[i] = id
		}
		query := fmt.Sprintf(`SELECT %s FROM nodes WHERE id IN (%s)`, nodeColumns, strings.Join(placeholders, ","))
		if err := func() error {
			rows, err := s.q.Query(query, args...)
			if err != nil {
				return fmt.Errorf("find nodes by ids: %w", err)
			}
			defer rows.Close()
			nodes, err := scanNodes(rows)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				out[n.ID] = n
			}
			return nil
		}(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanNode(row *sql.Row) (*model.Node, error) {
	var n model.Node
	var kind, visibility, language string
	var isAsync, isStatic, isExported int
	err := row.Scan(&n.ID, &kind, &n.Name, &n.QualifiedName, &n.FilePath, &n.StartLine, &n.EndLine,
		&n.StartColumn, &n.EndColumn, &n.Signature, &visibility, &n.Docstring,
		&isAsync, &isStatic, &isExported, &language)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan node: %w", err)
	}
	n.Kind = model.Kind(kind)
	n.Visibility = model.Visibility(visibility)
	n.Language = model.Language(language)
	n.IsAsync = isAsync != 0
	n.IsStatic = isStatic != 0
	n.IsExported = isExported != 0
	return &n, nil
}

func scanNodes(rows *sql.Rows) ([]*model.Node, error) {
	var out []*model.Node
	for rows.Next() {
		var n model.Node
		var kind, visibility, language string
		var isAsync, isStatic, isExported int
		if err := rows.Scan(&n.ID, &kind, &n.Name, &n.QualifiedName, &n.FilePath, &n.StartLine, &n.EndLine,
			&n.StartColumn, &n.EndColumn, &n.Signature, &visibility, &n.Docstring,
			&isAsync, &isStatic, &isExported, &language); err != nil {
			return nil, fmt.Errorf("scan node row: %w", err)
		}
		n.Kind = model.Kind(kind)
		n.Visibility = model.Visibility(visibility)
		n.Language = model.Language(language)
		n.IsAsync = isAsync != 0
		n.IsStatic = isStatic != 0
		n.IsExported = isExported != 0
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return out, nil
}
