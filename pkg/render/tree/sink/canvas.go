package sink

import (
	"math"

	"github.com/matzehuels/arbor/pkg/lineage/layout"
)

// primitives is the state shared by the canvases.
type primitives struct {
	edges       []*layout.Edge
	annotations []*layout.Annotation
	updates     int
}

func (p *primitives) Clear() {
	p.edges = nil
	p.annotations = nil
}

func (p *primitives) AddEdge(e *layout.Edge)             { p.edges = append(p.edges, e) }
func (p *primitives) AddAnnotation(a *layout.Annotation) { p.annotations = append(p.annotations, a) }

// ApplyColourUpdate records that colours changed. Canvases read colours
// through the stored pointers when rendering, so nothing else is needed.
func (p *primitives) ApplyColourUpdate() { p.updates++ }

// Updates returns the number of colour updates applied since creation.
func (p *primitives) Updates() int { return p.updates }

// Empty reports whether nothing has been drawn.
func (p *primitives) Empty() bool { return len(p.edges) == 0 && len(p.annotations) == 0 }

func (p *primitives) bounds() layout.Bounds {
	b := layout.Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	grow := func(pt layout.Point) {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MaxY = math.Max(b.MaxY, pt.Y)
	}
	for _, e := range p.edges {
		grow(e.Start)
		grow(e.End)
	}
	for _, a := range p.annotations {
		grow(a.Position)
	}
	if p.Empty() {
		return layout.Bounds{}
	}
	return b
}

// fromTree feeds a finished tree through the canvas interface.
func (p *primitives) fromTree(t *layout.Tree) {
	p.Clear()
	for i := range t.Edges {
		p.AddEdge(&t.Edges[i])
	}
	for i := range t.Annotations {
		p.AddAnnotation(&t.Annotations[i])
	}
}
