package lineage

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/arbor/pkg/errors"
)

// PointStore resolves the time range of a track from its points.
// Implementations return an error carrying [errors.ErrCodeNotFound] when the
// track has no points.
type PointStore interface {
	TimeRange(id int64) (TimeRange, error)
}

// ExtractOptions tunes [Extract].
type ExtractOptions struct {
	// Strict rejects a query that belongs to more than one tree with
	// ErrCodeMalformedGraph. By default the last matching root (in ascending
	// root order) wins.
	Strict bool
}

// Extract finds the tree of roots that contains query and materialises it.
//
// The returned root is the id of that tree's root. When no tree contains the
// query, the query is its own single-node tree: root == query and the list
// holds one node of generation 1.
//
// Nodes are listed in breadth-first discovery order, root first. A track
// reachable through more than one parent is listed once, under the parent
// that reached it first. Time range lookups that fail abort the extraction
// and the error is returned unchanged in code.
func Extract(fwd ForwardGraph, roots []int64, store PointStore, query int64, opts ExtractOptions) (int64, []TreeNode, error) {
	root, found, err := findRoot(fwd, roots, query, opts.Strict)
	if err != nil {
		return 0, nil, err
	}

	if !found {
		n, err := materialize(fwd, store, query, 1)
		if err != nil {
			return 0, nil, err
		}
		return query, []TreeNode{n}, nil
	}

	first, err := materialize(fwd, store, root, 1)
	if err != nil {
		return 0, nil, err
	}

	nodes := []TreeNode{first}
	marked := map[int64]struct{}{root: {}}

	for i := 0; i < len(nodes); i++ {
		parent := nodes[i]
		for _, child := range parent.Children {
			if _, ok := marked[child]; ok {
				continue
			}
			marked[child] = struct{}{}
			n, err := materialize(fwd, store, child, parent.Generation+1)
			if err != nil {
				return 0, nil, err
			}
			nodes = append(nodes, n)
		}
	}

	return root, nodes, nil
}

// Build inverts raw and extracts the tree containing query.
func Build(raw RawGraph, store PointStore, query int64, opts ExtractOptions) (int64, []TreeNode, error) {
	roots, fwd := Invert(raw)
	return Extract(fwd, roots, store, query, opts)
}

// Validate checks that every track referenced by raw, as a child or as a
// parent, has points in store. The first offending id in ascending order is
// reported with ErrCodeMalformedGraph.
func Validate(raw RawGraph, store PointStore) error {
	ids := make(map[int64]struct{})
	for child, parents := range raw {
		ids[child] = struct{}{}
		for _, p := range parents {
			ids[p] = struct{}{}
		}
	}
	for _, id := range slices.Sorted(maps.Keys(ids)) {
		if _, err := store.TimeRange(id); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedGraph, err, "graph references track %d", id)
		}
	}
	return nil
}

func findRoot(fwd ForwardGraph, roots []int64, query int64, strict bool) (int64, bool, error) {
	var (
		root    int64
		found   bool
		matches []int64
	)
	for _, r := range roots {
		if !slices.Contains(Linearise(fwd, r), query) {
			continue
		}
		root, found = r, true
		matches = append(matches, r)
	}
	if strict && len(matches) > 1 {
		return 0, false, errors.New(errors.ErrCodeMalformedGraph,
			"track %d belongs to %d trees (roots %v)", query, len(matches), matches)
	}
	return root, found, nil
}

func materialize(fwd ForwardGraph, store PointStore, id int64, generation int) (TreeNode, error) {
	t, err := store.TimeRange(id)
	if err != nil {
		return TreeNode{}, fmt.Errorf("track %d: %w", id, err)
	}
	return TreeNode{
		ID:         id,
		Time:       t,
		Generation: generation,
		Children:   slices.Clone(fwd[id]),
	}, nil
}
