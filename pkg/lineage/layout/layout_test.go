package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/arbor/pkg/lineage"
)

func node(id int64, gen int, children ...int64) lineage.TreeNode {
	return lineage.TreeNode{
		ID:         id,
		Time:       lineage.TimeRange{Min: int64(gen-1) * 10, Max: int64(gen-1)*10 + 8},
		Generation: gen,
		Children:   children,
	}
}

// pedigree is a three-generation tree:
//
//	        1
//	     /     \
//	    2       3
//	   / \    / | \
//	  4   5  6  7  8
//	     / \
//	    9  10
func pedigree() []lineage.TreeNode {
	return []lineage.TreeNode{
		node(1, 1, 2, 3),
		node(2, 2, 4, 5),
		node(3, 2, 6, 7, 8),
		node(4, 3),
		node(5, 3, 9, 10),
		node(6, 3),
		node(7, 3),
		node(8, 3),
		node(9, 4),
		node(10, 4),
	}
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil, DefaultOptions())
	if len(tree.Edges) != 0 || len(tree.Annotations) != 0 || len(tree.Nodes) != 0 {
		t.Errorf("Build(nil) = %+v, want empty tree", tree)
	}
}

func TestBuildSingleNode(t *testing.T) {
	tree := Build([]lineage.TreeNode{node(99, 1)}, DefaultOptions())

	if len(tree.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(tree.Edges))
	}
	if len(tree.Annotations) != 1 {
		t.Fatalf("annotations = %d, want 1", len(tree.Annotations))
	}
	if got := tree.Annotations[0].Label; got != "99" {
		t.Errorf("label = %q, want %q", got, "99")
	}
	if tree.Root != 99 {
		t.Errorf("root = %d, want 99", tree.Root)
	}
	if tree.Bounds.Width() != 0 || tree.Bounds.Height() != 0 {
		t.Errorf("bounds = %+v, want a single point", tree.Bounds)
	}
}

func TestBuildDivision(t *testing.T) {
	nodes := []lineage.TreeNode{node(1, 1, 2, 3), node(2, 2), node(3, 2)}
	tree := Build(nodes, DefaultOptions())

	wantSlots := map[int64]float64{1: 0.5, 2: 0, 3: 1}
	for id, want := range wantSlots {
		p, ok := tree.Node(id)
		if !ok {
			t.Fatalf("node %d missing", id)
		}
		if p.Slot != want {
			t.Errorf("slot(%d) = %v, want %v", id, p.Slot, want)
		}
	}

	// 3 extents + 2 branches
	if len(tree.Edges) != 5 {
		t.Fatalf("edges = %d, want 5", len(tree.Edges))
	}
	if len(tree.Annotations) != 3 {
		t.Errorf("annotations = %d, want 3", len(tree.Annotations))
	}

	var branches []Edge
	for _, e := range tree.Edges {
		if e.HasID() {
			branches = append(branches, e)
		}
	}
	if len(branches) != 2 {
		t.Fatalf("branches = %d, want 2", len(branches))
	}
	root, _ := tree.Node(1)
	for _, b := range branches {
		child, _ := tree.Node(*b.ID)
		if b.Start != (Point{X: root.X, Y: root.Bottom}) {
			t.Errorf("branch %d start = %+v, want parent end", *b.ID, b.Start)
		}
		if b.End != (Point{X: child.X, Y: child.Top}) {
			t.Errorf("branch %d end = %+v, want child start", *b.ID, b.End)
		}
		if b.Style != StyleSolid {
			t.Errorf("branch %d style = %v, want solid", *b.ID, b.Style)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(pedigree(), DefaultOptions())
	b := Build(pedigree(), DefaultOptions())
	if !reflect.DeepEqual(a, b) {
		t.Error("two layouts of the same tree differ")
	}
}

func TestBuildSlotsNonCrossing(t *testing.T) {
	nodes := pedigree()
	tree := Build(nodes, DefaultOptions())

	for _, n := range nodes {
		for i := 1; i < len(n.Children); i++ {
			left, _ := tree.Node(n.Children[i-1])
			right, _ := tree.Node(n.Children[i])
			if left.Last >= right.First {
				t.Errorf("children %d [%d,%d] and %d [%d,%d] of %d overlap",
					left.ID, left.First, left.Last, right.ID, right.First, right.Last, n.ID)
			}
		}
	}
}

func TestBuildSlotsContiguous(t *testing.T) {
	nodes := pedigree()
	tree := Build(nodes, DefaultOptions())

	byID := make(map[int64]lineage.TreeNode)
	for _, n := range nodes {
		byID[n.ID] = n
	}
	var leaves func(id int64) int
	leaves = func(id int64) int {
		n := byID[id]
		if n.IsLeaf() {
			return 1
		}
		total := 0
		for _, c := range n.Children {
			total += leaves(c)
		}
		return total
	}

	for _, p := range tree.Nodes {
		if got, want := p.Last-p.First+1, leaves(p.ID); got != want {
			t.Errorf("span(%d) = %d slots, want %d", p.ID, got, want)
		}
		if p.Slot < float64(p.First) || p.Slot > float64(p.Last) {
			t.Errorf("slot(%d) = %v outside [%d,%d]", p.ID, p.Slot, p.First, p.Last)
		}
	}

	// Leaves fill 0..n-1 in depth-first order.
	wantLeaves := map[int64]float64{4: 0, 9: 1, 10: 2, 6: 3, 7: 4, 8: 5}
	for id, want := range wantLeaves {
		if p, _ := tree.Node(id); p.Slot != want {
			t.Errorf("slot(%d) = %v, want %v", id, p.Slot, want)
		}
	}
	if p, _ := tree.Node(5); p.Slot != 1.5 {
		t.Errorf("slot(5) = %v, want 1.5", p.Slot)
	}
}

func TestBuildGenerationRows(t *testing.T) {
	opts := DefaultOptions()
	opts.RowHeight = 40
	opts.SlotWidth = 20
	tree := Build(pedigree(), opts)

	for _, p := range tree.Nodes {
		wantTop := float64(p.Generation-1) * 40
		if p.Top != wantTop {
			t.Errorf("top(%d) = %v, want %v", p.ID, p.Top, wantTop)
		}
		if math.Abs(p.Bottom-(wantTop+40*opts.ExtentFraction)) > 1e-9 {
			t.Errorf("bottom(%d) = %v, want %v", p.ID, p.Bottom, wantTop+40*opts.ExtentFraction)
		}
		if p.X != p.Slot*20 {
			t.Errorf("x(%d) = %v, want %v", p.ID, p.X, p.Slot*20)
		}
	}
}

func TestBuildTimeAxis(t *testing.T) {
	opts := DefaultOptions()
	opts.Axis = AxisTime
	opts.TimeScale = 2
	nodes := []lineage.TreeNode{
		{ID: 1, Time: lineage.TimeRange{Min: 0, Max: 9}, Generation: 1, Children: []int64{2}},
		{ID: 2, Time: lineage.TimeRange{Min: 10, Max: 30}, Generation: 2},
	}
	tree := Build(nodes, opts)

	p, _ := tree.Node(2)
	if p.Top != 20 || p.Bottom != 60 {
		t.Errorf("track 2 spans %v..%v, want 20..60", p.Top, p.Bottom)
	}
	if tree.Bounds.MaxY != 60 {
		t.Errorf("bounds.MaxY = %v, want 60", tree.Bounds.MaxY)
	}
}

func TestBuildCountsEdgesAndAnnotations(t *testing.T) {
	nodes := pedigree()
	tree := Build(nodes, DefaultOptions())

	relations := 0
	for _, n := range nodes {
		relations += len(n.Children)
	}
	if got, want := len(tree.Edges), len(nodes)+relations; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
	if got := len(tree.Annotations); got != len(nodes) {
		t.Errorf("annotations = %d, want %d", got, len(nodes))
	}
	for _, e := range tree.Edges {
		if !e.HasID() && e.Start.X != e.End.X {
			t.Errorf("extent edge %+v is not vertical", e)
		}
	}
}

func TestBuildMergeIsDashed(t *testing.T) {
	// 4 descends from both 2 and 3; 2 reaches it first.
	nodes := []lineage.TreeNode{
		node(1, 1, 2, 3),
		node(2, 2, 4),
		node(3, 2, 4),
		node(4, 3),
	}
	tree := Build(nodes, DefaultOptions())

	var solid, dashed int
	for _, e := range tree.Edges {
		if !e.HasID() || *e.ID != 4 {
			continue
		}
		switch e.Style {
		case StyleSolid:
			solid++
		case StyleDashed:
			dashed++
		}
	}
	if solid != 1 || dashed != 1 {
		t.Errorf("edges into 4: solid=%d dashed=%d, want 1 and 1", solid, dashed)
	}

	p2, _ := tree.Node(2)
	p4, _ := tree.Node(4)
	if p4.X != p2.X {
		t.Errorf("x(4) = %v, want under its first parent at %v", p4.X, p2.X)
	}
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in      string
		want    Axis
		wantErr bool
	}{
		{in: "", want: AxisGeneration},
		{in: "generation", want: AxisGeneration},
		{in: "time", want: AxisTime},
		{in: "depth", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAxis(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAxis(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAxis(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
