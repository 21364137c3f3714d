package store

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
	path TEXT PRIMARY KEY,
	content_hash TEXT NOT NULL,
	language TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	modified_at TEXT NOT NULL,
	indexed_at TEXT NOT NULL,
	node_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS nodes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	name TEXT NOT NULL,
	qualified_name TEXT NOT NULL DEFAULT '',
	file_path TEXT NOT NULL REFERENCES files(path) ON DELETE CASCADE,
	start_line INTEGER NOT NULL DEFAULT 0,
	end_line INTEGER NOT NULL DEFAULT 0,
	start_column INTEGER NOT NULL DEFAULT 0,
	end_column INTEGER NOT NULL DEFAULT 0,
	signature TEXT NOT NULL DEFAULT '',
	visibility TEXT NOT NULL DEFAULT 'unknown',
	docstring TEXT NOT NULL DEFAULT '',
	is_async INTEGER NOT NULL DEFAULT 0,
	is_static INTEGER NOT NULL DEFAULT 0,
	is_exported INTEGER NOT NULL DEFAULT 0,
	language TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_nodes_name_lower ON nodes(kind, lower(name));
CREATE INDEX IF NOT EXISTS idx_nodes_file ON nodes(file_path);
CREATE INDEX IF NOT EXISTS idx_nodes_kind ON nodes(kind);
CREATE INDEX IF NOT EXISTS idx_nodes_qn ON nodes(qualified_name);

CREATE TABLE IF NOT EXISTS edges (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	target_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	kind TEXT NOT NULL,
	file_path TEXT,
	line INTEGER,
	column INTEGER
);

CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
CREATE INDEX IF NOT EXISTS idx_edges_kind ON edges(kind);

CREATE TABLE IF NOT EXISTS unresolved_refs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_node_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	reference_name TEXT NOT NULL,
	kind TEXT NOT NULL,
	file_path TEXT NOT NULL,
	line INTEGER NOT NULL DEFAULT 0,
	column INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_unresolved_name ON unresolved_refs(reference_name);
`

func (s *Store) initSchema() error {
	_, err := s.db.Exec(schemaDDL)
	return err
}
