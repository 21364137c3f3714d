package store

import "fmt"

// Stats summarizes the current contents of the store, per spec.md §4.1's
// get_stats operation.
type Stats struct {
	FileCount  int
	NodeCount  int
	EdgeCount  int
	ByteSize   int64
	ByLanguage map[string]int
	ByKind     map[string]int
}

// GetStats computes file/node/edge counts, total indexed byte size, and
// histograms by language and by kind.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{ByLanguage: map[string]int{}, ByKind: map[string]int{}}

	if err := s.q.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM files`).
		Scan(&stats.FileCount, &stats.ByteSize); err != nil {
		return nil, fmt.Errorf("stats files: %w", err)
	}
	if err := s.q.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&stats.NodeCount); err != nil {
		return nil, fmt.Errorf("stats nodes: %w", err)
	}
	if err := s.q.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&stats.EdgeCount); err != nil {
		return nil, fmt.Errorf("stats edges: %w", err)
	}

	langRows, err := s.q.Query(`SELECT language, COUNT(*) FROM files GROUP BY language`)
	if err != nil {
		return nil, fmt.Errorf("stats by language: %w", err)
	}
	defer langRows.Close()
	for langRows.Next() {
		var lang string
		var count int
		if err := langRows.Scan(&lang, &count); err != nil {
			return nil, fmt.Errorf("scan language histogram: %w", err)
		}
		stats.ByLanguage[lang] = count
	}
	if err := langRows.Err(); err != nil {
		return nil, err
	}

	kindRows, err := s.q.Query(`SELECT kind, COUNT(*) FROM nodes GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("stats by kind: %w", err)
	}
	defer kindRows.Close()
	for kindRows.Next() {
		var kind string
		var count int
		if err := kindRows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan kind histogram: %w", err)
		}
		stats.ByKind[kind] = count
	}
	if err := kindRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
