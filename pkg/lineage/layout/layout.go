package layout

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/arbor/pkg/lineage"
)

// Axis selects what the vertical axis represents.
type Axis int

const (
	// AxisGeneration gives every generation its own row.
	AxisGeneration Axis = iota
	// AxisTime places each track at the frames in which it exists.
	AxisTime
)

// String returns the axis name as used in configuration.
func (a Axis) String() string {
	if a == AxisTime {
		return "time"
	}
	return "generation"
}

// ParseAxis parses "generation" or "time".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "", "generation":
		return AxisGeneration, nil
	case "time":
		return AxisTime, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Options configures [Build]. The zero value is not useful; start from
// [DefaultOptions].
type Options struct {
	Axis Axis

	SlotWidth      float64 // horizontal distance between adjacent leaf slots
	RowHeight      float64 // vertical distance between generations (AxisGeneration)
	ExtentFraction float64 // share of a row covered by a track's extent (AxisGeneration)
	TimeScale      float64 // layout units per frame (AxisTime)
	LabelOffset    float64 // horizontal gap between a track and its label

	EdgeColour  Colour
	LabelColour Colour
}

// DefaultOptions returns the standard layout options.
func DefaultOptions() Options {
	return Options{
		Axis:           AxisGeneration,
		SlotWidth:      1,
		RowHeight:      1,
		ExtentFraction: 0.6,
		TimeScale:      1,
		LabelOffset:    0.1,
		EdgeColour:     DefaultEdgeColour,
		LabelColour:    DefaultLabelColour,
	}
}

// Build lays out the tree described by nodes, which must be in the order
// produced by [lineage.Extract]: root first, every node after the node
// through which it was discovered.
//
// Every node gets an extent edge (nil ID) and one annotation. Every
// parent-child pair whose child is in nodes gets a branch edge carrying the
// child's id. A single node lays out as a point with one annotation and no
// edges. An empty list returns an empty Tree.
func Build(nodes []lineage.TreeNode, opts Options) Tree {
	if len(nodes) == 0 {
		return Tree{}
	}

	placed := place(nodes)
	byID := make(map[int64]*Placement, len(placed.order))
	tree := Tree{Root: nodes[0].ID, Nodes: make([]Placement, 0, len(nodes))}

	for _, n := range nodes {
		s := placed.slots[n.ID]
		top, bottom := vertical(n, opts)
		tree.Nodes = append(tree.Nodes, Placement{
			ID:         n.ID,
			Slot:       s.centre,
			First:      s.first,
			Last:       s.last,
			Generation: n.Generation,
			X:          s.centre * opts.SlotWidth,
			Top:        top,
			Bottom:     bottom,
		})
	}
	for i := range tree.Nodes {
		byID[tree.Nodes[i].ID] = &tree.Nodes[i]
	}

	bounds := emptyBounds()

	if len(nodes) == 1 {
		p := tree.Nodes[0]
		at := Point{X: p.X, Y: p.Top}
		bounds.add(at)
		tree.Annotations = []Annotation{annotate(nodes[0].ID, at, opts)}
		tree.Bounds = bounds
		return tree
	}

	for _, n := range nodes {
		p := byID[n.ID]
		start := Point{X: p.X, Y: p.Top}
		end := Point{X: p.X, Y: p.Bottom}
		tree.Edges = append(tree.Edges, Edge{Start: start, End: end, Colour: opts.EdgeColour})
		bounds.add(start)
		bounds.add(end)

		for _, child := range n.Children {
			c, ok := byID[child]
			if !ok {
				continue
			}
			style := StyleSolid
			if placed.owner[child] != n.ID {
				style = StyleDashed
			}
			tree.Edges = append(tree.Edges, Edge{
				ID:     TrackID(child),
				Start:  end,
				End:    Point{X: c.X, Y: c.Top},
				Colour: opts.EdgeColour,
				Style:  style,
			})
		}

		tree.Annotations = append(tree.Annotations, annotate(n.ID, end, opts))
	}

	tree.Bounds = bounds
	return tree
}

func annotate(id int64, at Point, opts Options) Annotation {
	return Annotation{
		Label:    strconv.FormatInt(id, 10),
		Position: Point{X: at.X + opts.LabelOffset, Y: at.Y},
		Colour:   opts.LabelColour,
	}
}

func vertical(n lineage.TreeNode, opts Options) (top, bottom float64) {
	if opts.Axis == AxisTime {
		return float64(n.Time.Min) * opts.TimeScale, float64(n.Time.Max) * opts.TimeScale
	}
	top = float64(n.Generation-1) * opts.RowHeight
	return top, top + opts.RowHeight*opts.ExtentFraction
}
