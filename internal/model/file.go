package model

import "time"

// FileRecord tracks one indexed source file.
type FileRecord struct {
	Path        string // project-root-relative; primary key
	ContentHash string // lowercase hex SHA-256
	Language    Language
	Size        int64
	ModifiedAt  time.Time
	IndexedAt   time.Time
	NodeCount   int
}

// UnresolvedReference is a call-site textual name staged during extraction,
// pending the resolve pass (spec.md §4.5).
type UnresolvedReference struct {
	ID             int64
	SourceNodeID   int64
	ReferenceName  string
	Kind           EdgeKind
	FilePath       string
	Line           int
	Column         int
}
