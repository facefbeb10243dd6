package layout

import "github.com/matzehuels/arbor/pkg/lineage"

type slot struct {
	centre      float64
	first, last int
}

type placement struct {
	slots map[int64]slot
	owner map[int64]int64 // child -> parent that places it
	order []int64
}

// place assigns horizontal slots. Each non-root node is owned by the first
// node in list order that names it as a child; ownership forms a forest in
// which leaves take consecutive slots and parents are centred over their
// first and last child.
func place(nodes []lineage.TreeNode) placement {
	p := placement{
		slots: make(map[int64]slot, len(nodes)),
		owner: make(map[int64]int64, len(nodes)),
	}

	present := make(map[int64]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	owned := make(map[int64][]int64, len(nodes))
	claimed := map[int64]bool{nodes[0].ID: true}
	for _, n := range nodes {
		for _, c := range n.Children {
			if !present[c] || claimed[c] {
				continue
			}
			claimed[c] = true
			p.owner[c] = n.ID
			owned[n.ID] = append(owned[n.ID], c)
		}
	}

	next := 0
	var visit func(id int64)
	visit = func(id int64) {
		p.order = append(p.order, id)
		kids := owned[id]
		if len(kids) == 0 {
			p.slots[id] = slot{centre: float64(next), first: next, last: next}
			next++
			return
		}
		for _, k := range kids {
			visit(k)
		}
		first, last := p.slots[kids[0]], p.slots[kids[len(kids)-1]]
		p.slots[id] = slot{
			centre: (first.centre + last.centre) / 2,
			first:  first.first,
			last:   last.last,
		}
	}

	// Nodes nobody claims start their own subtree to the right; for
	// extractor output that is only the root.
	for _, n := range nodes {
		if _, ok := p.slots[n.ID]; ok {
			continue
		}
		if _, ok := p.owner[n.ID]; ok {
			continue
		}
		visit(n.ID)
	}

	// Only reachable for hand-built lists whose ownership loops back on
	// itself; such nodes become isolated leaves.
	for _, n := range nodes {
		if _, ok := p.slots[n.ID]; !ok {
			p.order = append(p.order, n.ID)
			p.slots[n.ID] = slot{centre: float64(next), first: next, last: next}
			next++
		}
	}
	return p
}
