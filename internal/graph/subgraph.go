package graph

import (
	"github.com/grahambrooks/codemap/internal/model"
	"github.com/grahambrooks/codemap/internal/store"
)

// SubgraphOptions configures ExtractSubgraph, per spec.md §4.6.
type SubgraphOptions struct {
	MaxDepth  int
	EdgeKinds []model.EdgeKind // nil/empty means all kinds
	NodeKinds []model.Kind     // nil/empty means all kinds
	Limit     int
}

// DefaultSubgraphOptions returns spec.md §4.6's defaults: max_depth=2,
// edge_kinds=all, node_kinds=all, limit=50.
func DefaultSubgraphOptions() SubgraphOptions {
	return SubgraphOptions{MaxDepth: 2, Limit: 50}
}

// SubgraphResult is the visited node set and the edges traversed to reach
// it (duplicates possible, per spec.md §4.6).
type SubgraphResult struct {
	Nodes []*model.Node
	Edges []*model.Edge
}

type subgraphFrontierItem struct {
	id  int64
	hop int
}

// ExtractSubgraph performs a bidirectional BFS (following both outgoing
// and incoming edges) from seedIDs, expanding to neighbors whose edge
// kind and node kind pass the filters in opts, bounded by opts.MaxDepth
// and opts.Limit.
func ExtractSubgraph(db *store.Store, seedIDs []int64, opts SubgraphOptions) (*SubgraphResult, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 2
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}

	visited := make(map[int64]*model.Node)
	var edgesSeen []*model.Edge
	var frontier []subgraphFrontierItem

	consider := func(id int64, hop int) {
		if _, ok := visited[id]; ok || len(visited) >= opts.Limit {
			return
		}
		n, err := db.GetNode(id)
		if err != nil || !nodeKindAllowed(n.Kind, opts.NodeKinds) {
			return
		}
		visited[id] = n
		frontier = append(frontier, subgraphFrontierItem{id, hop})
	}

	for _, id := range seedIDs {
		consider(id, 0)
	}

	for i := 0; i < len(frontier) && len(visited) < opts.Limit; i++ {
		item := frontier[i]
		if item.hop >= opts.MaxDepth {
			continue
		}
		out, err := db.GetOutgoingEdges(item.id)
		if err != nil {
			return nil, err
		}
		in, err := db.GetIncomingEdges(item.id)
		if err != nil {
			return nil, err
		}

		for _, e := range out {
			if !edgeKindAllowed(e.Kind, opts.EdgeKinds) {
				continue
			}
			edgesSeen = append(edgesSeen, e)
			consider(e.TargetID, item.hop+1)
		}
		for _, e := range in {
			if !edgeKindAllowed(e.Kind, opts.EdgeKinds) {
				continue
			}
			edgesSeen = append(edgesSeen, e)
			consider(e.SourceID, item.hop+1)
		}
	}

	nodes := make([]*model.Node, 0, len(visited))
	for _, n := range visited {
		nodes = append(nodes, n)
	}
	return &SubgraphResult{Nodes: nodes, Edges: edgesSeen}, nil
}

func edgeKindAllowed(k model.EdgeKind, allowed []model.EdgeKind) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == k {
			return true
		}
	}
	return false
}

func nodeKindAllowed(k model.Kind, allowed []model.Kind) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == k {
			return true
		}
	}
	return false
}
