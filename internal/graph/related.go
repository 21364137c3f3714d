package graph

import (
	"sort"

	"github.com/grahambrooks/codemap/internal/model"
	"github.com/grahambrooks/codemap/internal/store"
)

const relatedPerEntryLimit = 10

// RelatedNode is one node in a weighted neighborhood, with its summed
// score across every entry point that reached it.
type RelatedNode struct {
	Node  *model.Node
	Score float64
}

// FindRelated computes the weighted callee/caller neighborhood of
// entryPoints per spec.md §4.6: for each entry point, callees are
// enumerated (rank-weighted 1/(rank+1)) then callers (rank-weighted
// 0.8/(rank+1)), each capped at relatedPerEntryLimit. Scores are summed
// across entry points, sorted descending, and truncated to maxNodes.
// Ties break by ascending node id, which is deterministic within a run
// but otherwise arbitrary.
func FindRelated(db *store.Store, entryPoints []int64, maxNodes int) ([]*RelatedNode, error) {
	scores := make(map[int64]float64)
	nodes := make(map[int64]*model.Node)

	for _, entry := range entryPoints {
		callees, err := db.GetCallees(entry, relatedPerEntryLimit)
		if err != nil {
			return nil, err
		}
		for rank, n := range callees {
			scores[n.ID] += 1.0 / float64(rank+1)
			nodes[n.ID] = n
		}

		callers, err := db.GetCallers(entry, relatedPerEntryLimit)
		if err != nil {
			return nil, err
		}
		for rank, n := range callers {
			scores[n.ID] += 0.8 / float64(rank+1)
			nodes[n.ID] = n
		}
	}

	entrySet := make(map[int64]bool, len(entryPoints))
	for _, id := range entryPoints {
		entrySet[id] = true
	}

	out := make([]*RelatedNode, 0, len(scores))
	for id, score := range scores {
		if entrySet[id] {
			continue
		}
		out = append(out, &RelatedNode{Node: nodes[id], Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Node.ID < out[j].Node.ID
	})

	if maxNodes > 0 && len(out) > maxNodes {
		out = out[:maxNodes]
	}
	return out, nil
}
