package lineage

import (
	"maps"
	"slices"
)

// RawGraph maps a child track to the ordered list of its parents.
// A track that is not a key has no recorded parent.
type RawGraph map[int64][]int64

// ForwardGraph maps a parent track to its children, in the order in which
// the parent-child pairs were first encountered.
type ForwardGraph map[int64][]int64

// Children returns the children of id, or nil for a leaf.
func (g ForwardGraph) Children(id int64) []int64 { return g[id] }

// Invert builds the forward adjacency of raw and returns the roots in
// ascending order alongside it. A root is a track that appears as a parent
// but never as a child.
//
// Children are visited in ascending id order so that the child order of
// every parent is stable between calls. An empty raw graph yields no roots
// and an empty forward graph.
func Invert(raw RawGraph) ([]int64, ForwardGraph) {
	fwd := make(ForwardGraph)
	roots := make(map[int64]struct{})

	for _, child := range slices.Sorted(maps.Keys(raw)) {
		for _, parent := range raw[child] {
			fwd[parent] = append(fwd[parent], child)
			if _, ok := raw[parent]; !ok {
				roots[parent] = struct{}{}
			}
		}
	}

	return slices.Sorted(maps.Keys(roots)), fwd
}

// Linearise returns every track reachable from root in breadth-first order,
// root first. Each track appears once even when several paths lead to it,
// and cycles terminate the walk.
func Linearise(fwd ForwardGraph, root int64) []int64 {
	seen := map[int64]struct{}{root: {}}
	queue := []int64{root}
	var linear []int64

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		linear = append(linear, id)
		for _, child := range fwd[id] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return linear
}
