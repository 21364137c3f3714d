package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/grahambrooks/codemap/internal/errs"
	"github.com/grahambrooks/codemap/internal/model"
)

const timeLayout = time.RFC3339Nano

// UpsertFile inserts or replaces the file record keyed on path.
func (s *Store) UpsertFile(rec *model.FileRecord) error {
	_, err := s.q.Exec(`
		INSERT INTO files (path, content_hash, language, size, modified_at, indexed_at, node_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash=excluded.content_hash, language=excluded.language, size=excluded.size,
			modified_at=excluded.modified_at, indexed_at=excluded.indexed_at, node_count=excluded.node_count`,
		rec.Path, rec.ContentHash, string(rec.Language), rec.Size,
		rec.ModifiedAt.Format(timeLayout), rec.IndexedAt.Format(timeLayout), rec.NodeCount)
	if err != nil {
		return fmt.Errorf("upsert file %s: %w", rec.Path, err)
	}
	return nil
}

// SetNodeCount updates a file record's node_count after its nodes have
// been persisted (spec.md §4.4 step 13 — the file row is written before
// its node_count is known).
func (s *Store) SetNodeCount(path string, count int) error {
	_, err := s.q.Exec(`UPDATE files SET node_count=? WHERE path=?`, count, path)
	if err != nil {
		return fmt.Errorf("set node count %s: %w", path, err)
	}
	return nil
}

// GetFile returns the file record for path, or errs.ErrNotFound.
func (s *Store) GetFile(path string) (*model.FileRecord, error) {
	row := s.q.QueryRow(`SELECT path, content_hash, language, size, modified_at, indexed_at, node_count
		FROM files WHERE path=?`, path)
	return scanFile(row)
}

// NeedsReindex reports whether path is absent or its stored hash differs
// from hash.
func (s *Store) NeedsReindex(path, hash string) (bool, error) {
	rec, err := s.GetFile(path)
	if errors.Is(err, errs.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return rec.ContentHash != hash, nil
}

// DeleteFile cascades in the order spec.md §3 requires: nodes, edges
// touching those nodes (via the ON DELETE CASCADE from nodes), unresolved
// refs for the file, then the file row itself.
func (s *Store) DeleteFile(path string) error {
	if _, err := s.q.Exec(`DELETE FROM nodes WHERE file_path=?`, path); err != nil {
		return fmt.Errorf("delete nodes for %s: %w", path, err)
	}
	if _, err := s.q.Exec(`DELETE FROM unresolved_refs WHERE file_path=?`, path); err != nil {
		return fmt.Errorf("delete unresolved refs for %s: %w", path, err)
	}
	if _, err := s.q.Exec(`DELETE FROM files WHERE path=?`, path); err != nil {
		return fmt.Errorf("delete file %s: %w", path, err)
	}
	return nil
}

func scanFile(row *sql.Row) (*model.FileRecord, error) {
	var rec model.FileRecord
	var lang, modifiedAt, indexedAt string
	err := row.Scan(&rec.Path, &rec.ContentHash, &lang, &rec.Size, &modifiedAt, &indexedAt, &rec.NodeCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	rec.Language = model.Language(lang)
	if rec.ModifiedAt, err = time.Parse(timeLayout, modifiedAt); err != nil {
		return nil, fmt.Errorf("parse modified_at: %w", err)
	}
	if rec.IndexedAt, err = time.Parse(timeLayout, indexedAt); err != nil {
		return nil, fmt.Errorf("parse indexed_at: %w", err)
	}
	return &rec, nil
}
