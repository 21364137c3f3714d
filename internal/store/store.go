// Package store persists the code graph — files, nodes, edges, and staged
// unresolved references — in an embedded SQLite database, and answers the
// name/kind/file/endpoint lookups the graph engine and context builder
// build on.
//
// Adapted from the teacher's internal/store package: the same Querier
// abstraction over *sql.DB/*sql.Tx, the same Open/OpenPath/OpenMemory/
// WithTransaction/Close shape, and the same id-batching discipline for
// SQLite's 999-bind-variable ceiling. The schema itself diverges from the
// teacher's — one project per store handle, explicit typed columns, no
// JSON properties blob — because this spec has no multi-project router
// and no need for schemaless node properties (see DESIGN.md).
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Querier abstracts *sql.DB and *sql.Tx so store methods work identically
// inside and outside a transaction.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store wraps a SQLite connection holding one project's code graph.
type Store struct {
	db     *sql.DB
	q      Querier // active querier: db, or a transaction when inside WithTransaction
	dbPath string
}

// OpenPath opens (creating if necessary) a SQLite database at dbPath and
// idempotently initializes its schema.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, dbPath: dbPath}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an ephemeral in-memory database — used by IN_MEMORY=1
// and by tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db, dbPath: ":memory:"}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// WithTransaction runs fn inside a single SQLite transaction. fn receives
// a transaction-scoped Store; every store method called on it participates
// in the same transaction. Per spec.md §5, transactions do not nest: an
// attempt to open one from inside fn would reuse this same txStore.
func (s *Store) WithTransaction(fn func(tx *Store) error) error {
	if _, inTx := s.q.(*sql.Tx); inTx {
		return fn(s)
	}
	txn, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txStore := &Store{db: s.db, q: txn, dbPath: s.dbPath}
	if err := fn(txStore); err != nil {
		_ = txn.Rollback()
		return err
	}
	return txn.Commit()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB, for callers that need raw access
// (e.g. stats queries spanning multiple tables).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Now returns the current time in UTC, the zone FileRecord timestamps are
// recorded in.
func Now() time.Time {
	return time.Now().UTC()
}
