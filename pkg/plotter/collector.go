package plotter

import "github.com/matzehuels/arbor/pkg/lineage/layout"

// Collector is a headless [Renderer] that records what it is given.
type Collector struct {
	Edges       []*layout.Edge
	Annotations []*layout.Annotation

	Clears        int // number of Clear calls
	ColourUpdates int // number of ApplyColourUpdate calls
}

// Clear forgets all primitives.
func (c *Collector) Clear() {
	c.Edges = nil
	c.Annotations = nil
	c.Clears++
}

// AddEdge records e.
func (c *Collector) AddEdge(e *layout.Edge) { c.Edges = append(c.Edges, e) }

// AddAnnotation records a.
func (c *Collector) AddAnnotation(a *layout.Annotation) { c.Annotations = append(c.Annotations, a) }

// ApplyColourUpdate counts the call.
func (c *Collector) ApplyColourUpdate() { c.ColourUpdates++ }

var _ Renderer = (*Collector)(nil)
