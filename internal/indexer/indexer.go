// Package indexer drives the file walk, change gate, and transactional
// apply that turns a source tree into a populated store.Store.
//
// Adapted from the teacher's internal/discover walker and the top-level
// shape of internal/pipeline's Run()/runFullPasses(), rebuilt as one
// sequential, single-threaded pass per spec.md §5 instead of the
// teacher's errgroup-parallel multi-pass pipeline (see DESIGN.md).
package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/grahambrooks/codemap/internal/extractor"
	"github.com/grahambrooks/codemap/internal/model"
	"github.com/grahambrooks/codemap/internal/store"
)

// Config controls one indexing pass.
type Config struct {
	Root               string
	IncludeExtensions  []string // defaults to every supported extension
	ExcludeDirs        []string // defaults to defaultExcludeDirs
	RespectIgnoreFiles bool
}

// Stats reports the outcome of an indexing pass, per spec.md §4.4.
type Stats struct {
	Files        int
	Nodes        int
	Edges        int
	Skipped      int
	Errors       int
	ResolvedRefs int
}

// Index walks cfg.Root and applies the result to db, wrapped in a single
// transaction so a partial failure leaves the prior index intact.
func Index(db *store.Store, cfg Config) (*Stats, error) {
	files, err := walk(cfg.Root, cfg)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", cfg.Root, err)
	}

	stats := &Stats{}
	err = db.WithTransaction(func(tx *store.Store) error {
		for _, f := range files {
			if err := indexOne(tx, f, stats); err != nil {
				return fmt.Errorf("index %s: %w", f.relPath, err)
			}
		}
		resolved, err := tx.ResolveReferences()
		if err != nil {
			return fmt.Errorf("resolve references: %w", err)
		}
		stats.ResolvedRefs = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("index.done", "files", stats.Files, "nodes", stats.Nodes,
		"edges", stats.Edges, "skipped", stats.Skipped, "errors", stats.Errors,
		"resolved_refs", stats.ResolvedRefs)
	return stats, nil
}

func indexOne(tx *store.Store, f walkedFile, stats *Stats) error {
	info, err := os.Stat(f.absPath)
	if err != nil {
		stats.Errors++
		slog.Warn("index.stat.err", "path", f.relPath, "err", err)
		return nil
	}

	content, err := os.ReadFile(f.absPath)
	if err != nil {
		stats.Errors++
		slog.Warn("index.read.err", "path", f.relPath, "err", err)
		return nil
	}

	hash := contentHash(content)
	needs, err := tx.NeedsReindex(f.relPath, hash)
	if err != nil {
		return err
	}
	if !needs {
		stats.Skipped++
		return nil
	}

	if err := tx.DeleteFile(f.relPath); err != nil {
		return err
	}

	result, err := extractor.Extract(f.relPath, content)
	if err != nil {
		stats.Errors++
		slog.Warn("index.extract.err", "path", f.relPath, "err", err)
		return nil
	}

	now := store.Now()
	if err := tx.UpsertFile(&model.FileRecord{
		Path:        f.relPath,
		ContentHash: hash,
		Language:    f.lang,
		Size:        info.Size(),
		ModifiedAt:  info.ModTime().UTC(),
		IndexedAt:   now,
		NodeCount:   0,
	}); err != nil {
		return err
	}

	idMap := make(map[int64]int64, len(result.Nodes))
	for _, n := range result.Nodes {
		localID := n.ID
		persistedID, err := tx.InsertNode(n)
		if err != nil {
			return err
		}
		idMap[localID] = persistedID
	}

	edgeCount := 0
	for _, e := range result.ContainsEdges {
		srcID, okSrc := idMap[e.SourceID]
		tgtID, okTgt := idMap[e.TargetID]
		if !okSrc || !okTgt {
			continue
		}
		e.SourceID, e.TargetID = srcID, tgtID
		if _, err := tx.InsertEdge(e); err != nil {
			return err
		}
		edgeCount++
	}

	for _, ref := range result.UnresolvedRefs {
		srcID, ok := idMap[ref.SourceNodeID]
		if !ok {
			continue
		}
		ref.SourceNodeID = srcID
		if _, err := tx.InsertUnresolvedRef(ref); err != nil {
			return err
		}
	}

	if err := tx.SetNodeCount(f.relPath, len(result.Nodes)); err != nil {
		return err
	}

	stats.Files++
	stats.Nodes += len(result.Nodes)
	stats.Edges += edgeCount
	return nil
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
