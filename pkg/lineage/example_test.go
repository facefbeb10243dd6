package lineage_test

import (
	"fmt"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage"
)

type frames map[int64]lineage.TimeRange

func (f frames) TimeRange(id int64) (lineage.TimeRange, error) {
	if t, ok := f[id]; ok {
		return t, nil
	}
	return lineage.TimeRange{}, errors.New(errors.ErrCodeNotFound, "track %d", id)
}

func ExampleInvert() {
	raw := lineage.RawGraph{2: {1}, 3: {1}, 4: {3}}

	roots, fwd := lineage.Invert(raw)
	fmt.Println("roots:", roots)
	fmt.Println("children of 1:", fwd.Children(1))
	fmt.Println("children of 3:", fwd.Children(3))
	// Output:
	// roots: [1]
	// children of 1: [2 3]
	// children of 3: [4]
}

func ExampleBuild() {
	raw := lineage.RawGraph{2: {1}, 3: {1}}
	store := frames{1: {Min: 0, Max: 9}, 2: {Min: 10, Max: 30}, 3: {Min: 10, Max: 24}}

	root, nodes, err := lineage.Build(raw, store, 3, lineage.ExtractOptions{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("root:", root)
	for _, n := range nodes {
		fmt.Printf("track %d gen %d frames %d-%d leaf=%v\n", n.ID, n.Generation, n.Time.Min, n.Time.Max, n.IsLeaf())
	}
	// Output:
	// root: 1
	// track 1 gen 1 frames 0-9 leaf=false
	// track 2 gen 2 frames 10-30 leaf=true
	// track 3 gen 2 frames 10-24 leaf=true
}
