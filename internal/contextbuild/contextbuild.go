// Package contextbuild assembles task-focused context — entry points,
// a weighted neighborhood, the edges among them, and optional code
// slices — from a free-form task string, per spec.md §4.7.
//
// Grounded on the teacher's internal/tools/search.go + trace.go
// combination (keyword-driven search feeding a BFS trace, then
// get_code_snippet-style source slicing), folded into one operation
// the way spec.md's context builder component describes it.
package contextbuild

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grahambrooks/codemap/internal/graph"
	"github.com/grahambrooks/codemap/internal/model"
	"github.com/grahambrooks/codemap/internal/store"
)

// Options configures BuildContext, per spec.md §4.7.
type Options struct {
	MaxNodes      int
	IncludeCode   bool
	MaxCodeBlocks int
	MaxBlockSize  int // bytes; default 1500 per spec.md §5
	Depth         int // neighborhood-expansion hops
}

// DefaultOptions returns the resource budgets spec.md §5 names.
func DefaultOptions() Options {
	return Options{
		MaxNodes:      20,
		IncludeCode:   true,
		MaxCodeBlocks: 5,
		MaxBlockSize:  1500,
		Depth:         1,
	}
}

// CodeBlock is one entry point's source slice, assembled per spec.md
// §4.7 step 5.
type CodeBlock struct {
	Node      *model.Node
	Before    []string
	Body      string
	After     []string
	Truncated bool
}

// Result is the presentation-ready output of BuildContext.
type Result struct {
	Task        string
	Keywords    []string
	EntryPoints []*model.Node
	Related     []*graph.RelatedNode
	Edges       []*model.Edge
	CodeBlocks  []*CodeBlock
}

const contextBeforeAfterLines = 3

// BuildContext runs the full keyword → entry points → neighborhood →
// code blocks pipeline of spec.md §4.7 against db, reading source files
// relative to root for code-block assembly.
func BuildContext(db *store.Store, root, task string, opts Options) (*Result, error) {
	if opts.MaxNodes <= 0 {
		opts = mergeDefaults(opts)
	}

	keywords := ExtractKeywords(task)
	entryPoints, err := selectEntryPoints(db, keywords, opts.MaxNodes/2)
	if err != nil {
		return nil, fmt.Errorf("select entry points: %w", err)
	}

	entryIDs := nodeIDs(entryPoints)
	related, err := expandNeighborhood(db, entryIDs, opts.MaxNodes/2, opts.Depth)
	if err != nil {
		return nil, fmt.Errorf("expand neighborhood: %w", err)
	}

	allIDs := append(append([]int64{}, entryIDs...), relatedIDs(related)...)
	edges, err := db.EdgesAmong(allIDs)
	if err != nil {
		return nil, fmt.Errorf("edges among context set: %w", err)
	}

	result := &Result{
		Task:        task,
		Keywords:    keywords,
		EntryPoints: entryPoints,
		Related:     related,
		Edges:       edges,
	}

	if opts.IncludeCode {
		blocks, err := buildCodeBlocks(root, entryPoints, opts.MaxCodeBlocks, opts.MaxBlockSize)
		if err != nil {
			return nil, fmt.Errorf("build code blocks: %w", err)
		}
		result.CodeBlocks = blocks
	}

	return result, nil
}

func mergeDefaults(opts Options) Options {
	d := DefaultOptions()
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = d.MaxNodes
	}
	if opts.MaxCodeBlocks <= 0 {
		opts.MaxCodeBlocks = d.MaxCodeBlocks
	}
	if opts.MaxBlockSize <= 0 {
		opts.MaxBlockSize = d.MaxBlockSize
	}
	if opts.Depth <= 0 {
		opts.Depth = d.Depth
	}
	return opts
}

// selectEntryPoints implements spec.md §4.7 step 2: for each keyword,
// search_nodes(keyword, None, 5), sort the batch by kind preference
// (function=method < class=struct < interface=trait < other), and append
// de-duped by id until limit is reached.
func selectEntryPoints(db *store.Store, keywords []string, limit int) ([]*model.Node, error) {
	if limit <= 0 {
		return nil, nil
	}
	seen := make(map[int64]bool)
	var out []*model.Node

	for _, kw := range keywords {
		matches, err := db.SearchNodes(kw, nil, 5)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return kindRank(matches[i].Kind) < kindRank(matches[j].Kind)
		})
		for _, n := range matches {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			out = append(out, n)
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// kindRank orders kinds by the preference spec.md §4.7 names: functions
// and methods first, then class-like containers, then interface-like
// containers, then everything else.
func kindRank(k model.Kind) int {
	switch k {
	case model.KindFunction, model.KindMethod:
		return 0
	case model.KindClass, model.KindStruct:
		return 1
	case model.KindInterface, model.KindTrait, model.KindProtocol:
		return 2
	default:
		return 3
	}
}

// expandNeighborhood runs FindRelated out to depth hops: each round's
// newly-discovered nodes seed the next round's frontier, bounded by limit
// overall. This is the "neighborhood expansion" spec.md §2 names for the
// context builder, beyond the single-hop weighting FindRelated computes
// on its own.
func expandNeighborhood(db *store.Store, entryIDs []int64, limit, depth int) ([]*graph.RelatedNode, error) {
	if limit <= 0 || len(entryIDs) == 0 {
		return nil, nil
	}
	if depth <= 0 {
		depth = 1
	}

	seen := make(map[int64]bool, len(entryIDs))
	for _, id := range entryIDs {
		seen[id] = true
	}

	var all []*graph.RelatedNode
	frontier := entryIDs
	for hop := 0; hop < depth && len(all) < limit; hop++ {
		related, err := graph.FindRelated(db, frontier, limit-len(all))
		if err != nil {
			return nil, err
		}
		var fresh []int64
		for _, r := range related {
			if seen[r.Node.ID] {
				continue
			}
			seen[r.Node.ID] = true
			all = append(all, r)
			fresh = append(fresh, r.Node.ID)
			if len(all) >= limit {
				break
			}
		}
		if len(fresh) == 0 {
			break
		}
		frontier = fresh
	}
	return all, nil
}

// buildCodeBlocks assembles code blocks for up to maxBlocks entry points
// that are not file nodes, per spec.md §4.7 step 5. Files that fail to
// read are skipped, not errors.
func buildCodeBlocks(root string, entryPoints []*model.Node, maxBlocks, maxBlockSize int) ([]*CodeBlock, error) {
	var blocks []*CodeBlock
	for _, n := range entryPoints {
		if len(blocks) >= maxBlocks {
			break
		}
		if n.Kind == model.KindFile {
			continue
		}
		block, ok := readCodeBlock(root, n, maxBlockSize)
		if !ok {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func readCodeBlock(root string, n *model.Node, maxBlockSize int) (*CodeBlock, bool) {
	content, err := os.ReadFile(filepath.Join(root, n.FilePath))
	if err != nil {
		return nil, false
	}
	lines := strings.Split(string(content), "\n")

	start := n.StartLine - 1
	end := n.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return nil, false
	}

	body := strings.Join(lines[start:end], "\n")
	truncated := false
	if len(body) > maxBlockSize {
		body = body[:maxBlockSize] + "\n// ... truncated"
		truncated = true
	}

	before := contextLines(lines, start-contextBeforeAfterLines, start)
	after := contextLines(lines, end, end+contextBeforeAfterLines)

	return &CodeBlock{Node: n, Before: before, Body: body, After: after, Truncated: truncated}, true
}

func contextLines(lines []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	out := make([]string, to-from)
	copy(out, lines[from:to])
	return out
}

func nodeIDs(nodes []*model.Node) []int64 {
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func relatedIDs(related []*graph.RelatedNode) []int64 {
	ids := make([]int64, len(related))
	for i, r := range related {
		ids[i] = r.Node.ID
	}
	return ids
}
