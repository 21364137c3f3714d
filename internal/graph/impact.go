package graph

import "github.com/grahambrooks/codemap/internal/store"

// ImpactedNode is one node reached while walking incoming calls edges from
// the analyzed root.
type ImpactedNode struct {
	ID       int64
	Name     string
	FilePath string
	Depth    int    // BFS level: 0 for direct callers, +1 per further hop
	Relation string // "direct" at depth 0, "indirect" at depth >= 1
}

// ImpactResult is the outcome of AnalyzeImpact.
type ImpactResult struct {
	RootID       int64
	RootName     string
	Direct       []*ImpactedNode
	Indirect     []*ImpactedNode
	TotalImpact  int
}

// AnalyzeImpact walks the incoming-calls-edge graph from name out to depth
// hops, per spec.md §4.6: depth-0 discoveries are direct callers, depth>=1
// are indirect. A visited set guarantees termination under cycles and
// excludes the root from the result. Each frontier node contributes at
// most perFrontierLimit neighbors.
func AnalyzeImpact(db *store.Store, name string, depth int) (*ImpactResult, error) {
	root, err := db.FindNodeByName(name)
	if err != nil {
		return &ImpactResult{RootName: name}, nil
	}
	if depth < 0 {
		depth = 0
	}

	result := &ImpactResult{RootID: root.ID, RootName: root.Name}
	visited := map[int64]bool{root.ID: true}

	type frontierItem struct {
		id  int64
		hop int
	}
	frontier := []frontierItem{{root.ID, -1}}

	for len(frontier) > 0 {
		next := make([]frontierItem, 0)
		for _, item := range frontier {
			if item.hop >= depth {
				continue
			}
			callers, err := db.GetCallers(item.id, perFrontierLimit)
			if err != nil {
				return nil, err
			}
			hop := item.hop + 1
			for _, c := range callers {
				if visited[c.ID] {
					continue
				}
				visited[c.ID] = true
				node := &ImpactedNode{ID: c.ID, Name: c.Name, FilePath: c.FilePath, Depth: hop}
				if hop == 0 {
					node.Relation = "direct"
					result.Direct = append(result.Direct, node)
				} else {
					node.Relation = "indirect"
					result.Indirect = append(result.Indirect, node)
				}
				next = append(next, frontierItem{c.ID, hop})
			}
		}
		frontier = next
	}

	result.TotalImpact = len(result.Direct) + len(result.Indirect)
	return result, nil
}
