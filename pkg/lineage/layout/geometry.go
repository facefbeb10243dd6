package layout

import "math"

// Point is a position in layout units. Y grows downward, matching SVG.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineStyle selects how an edge is stroked.
type LineStyle int

const (
	// StyleSolid is used for track extents and tree branches.
	StyleSolid LineStyle = iota
	// StyleDashed marks a parent-child link that is not part of the
	// placement tree, i.e. the second parent of a merge.
	StyleDashed
)

// String returns the style name.
func (s LineStyle) String() string {
	if s == StyleDashed {
		return "dashed"
	}
	return "solid"
}

// Edge is one line segment of the drawing.
type Edge struct {
	ID     *int64    `json:"id"` // nil for structural connectors
	Start  Point     `json:"start"`
	End    Point     `json:"end"`
	Colour Colour    `json:"colour"`
	Style  LineStyle `json:"style"`
}

// HasID reports whether the edge belongs to a track.
func (e Edge) HasID() bool { return e.ID != nil }

// Annotation is a text label placed next to a node.
type Annotation struct {
	Label    string `json:"label"`
	Position Point  `json:"position"`
	Colour   Colour `json:"colour"`
}

// Placement records where a node was put.
type Placement struct {
	ID         int64   `json:"id"`
	Slot       float64 `json:"slot"`       // horizontal slot, centre of the node's span
	First      int     `json:"first"`      // first leaf slot below the node
	Last       int     `json:"last"`       // last leaf slot below the node
	Generation int     `json:"generation"` // copied from the input node
	X          float64 `json:"x"`
	Top        float64 `json:"top"`    // where the track starts
	Bottom     float64 `json:"bottom"` // where the track ends
}

// Bounds is the axis-aligned box enclosing all geometry.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func emptyBounds() Bounds {
	return Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (b *Bounds) add(p Point) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Tree is the laid-out geometry of one lineage tree.
type Tree struct {
	Root        int64        `json:"root"`
	Nodes       []Placement  `json:"nodes"`
	Edges       []Edge       `json:"edges"`
	Annotations []Annotation `json:"annotations"`
	Bounds      Bounds       `json:"bounds"`
}

// Node returns the placement of id.
func (t Tree) Node(id int64) (Placement, bool) {
	for _, p := range t.Nodes {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// TrackID returns a pointer to id, for use as [Edge.ID] or a highlight.
func TrackID(id int64) *int64 { return &id }
