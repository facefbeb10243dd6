// Package plotter turns track data into drawing calls on a renderer.
//
// A [Plotter] owns the geometry of the tree currently on screen. DrawTree
// extracts the tree containing a track, lays it out, colours it from the
// track data and hands every primitive to a [Renderer]. Colour changes only
// re-run the colour step: [Plotter.UpdateEdgeColours] and
// [Plotter.Highlight] mutate the existing primitives in place.
//
// The plotter never depends on a concrete renderer. SVG, terminal and
// headless renderers all implement the same four methods.
package plotter

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage"
	"github.com/matzehuels/arbor/pkg/lineage/layout"
	"github.com/matzehuels/arbor/pkg/observability"
)

// Renderer draws primitives produced by a [Plotter].
//
// The pointers passed to AddEdge and AddAnnotation are owned by the plotter
// and stay valid until the next Clear. Colour refreshes write through them,
// after which ApplyColourUpdate is called so the renderer can redraw.
type Renderer interface {
	Clear()
	AddEdge(e *layout.Edge)
	AddAnnotation(a *layout.Annotation)
	ApplyColourUpdate()
}

// TrackData is the track layer a plotter reads from.
type TrackData interface {
	lineage.PointStore
	Graph() lineage.RawGraph
	Colour(id int64) (layout.Colour, bool)
}

// Options configures a [Plotter].
type Options struct {
	Layout    layout.Options
	Highlight layout.HighlightOptions
	Extract   lineage.ExtractOptions
}

// DefaultOptions returns the default layout, highlight and extraction options.
func DefaultOptions() Options {
	return Options{
		Layout:    layout.DefaultOptions(),
		Highlight: layout.DefaultHighlight(),
	}
}

// Plotter draws lineage trees onto a [Renderer].
// It is not safe for concurrent use.
type Plotter struct {
	renderer    Renderer
	tracks      TrackData
	opts        Options
	nodes       []lineage.TreeNode
	tree        layout.Tree
	highlighted *int64
}

// New creates a plotter drawing onto r.
func New(r Renderer, opts Options) *Plotter {
	return &Plotter{renderer: r, opts: opts}
}

// SetTracks sets the track data used by DrawTree and colour refreshes.
func (p *Plotter) SetTracks(t TrackData) { p.tracks = t }

// HasTracks reports whether track data has been set.
func (p *Plotter) HasTracks() bool { return p.tracks != nil }

// Tree returns the geometry currently drawn.
func (p *Plotter) Tree() layout.Tree { return p.tree }

// Nodes returns the extracted nodes of the tree currently drawn.
func (p *Plotter) Nodes() []lineage.TreeNode { return p.nodes }

// Highlighted returns the highlighted track, or nil.
func (p *Plotter) Highlighted() *int64 { return p.highlighted }

// DrawTree draws the tree containing track id and highlights id.
//
// If extraction fails (for example because id has no points) the error is
// returned and the renderer keeps showing the previous tree.
func (p *Plotter) DrawTree(ctx context.Context, id int64) error {
	if p.tracks == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no tracks set on this plotter")
	}

	start := time.Now()
	root, nodes, err := lineage.Build(p.tracks.Graph(), p.tracks, id, p.opts.Extract)
	observability.Draw().OnExtract(ctx, id, root, len(nodes), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("draw tree of track %d: %w", id, err)
	}

	p.DrawFromNodes(ctx, nodes, layout.TrackID(id))
	return nil
}

// DrawFromNodes lays out nodes and redraws the renderer from scratch.
// highlighted may be nil.
func (p *Plotter) DrawFromNodes(ctx context.Context, nodes []lineage.TreeNode, highlighted *int64) {
	start := time.Now()
	tree := layout.Build(nodes, p.opts.Layout)
	observability.Draw().OnLayout(ctx, tree.Root, len(tree.Edges), len(tree.Annotations), time.Since(start))

	p.nodes = nodes
	p.tree = tree
	p.highlighted = highlighted

	if p.HasTracks() {
		p.UpdateEdgeColours(ctx, false)
	}
	layout.Highlight(p.tree.Annotations, highlighted, p.opts.Highlight)

	p.renderer.Clear()
	for i := range p.tree.Edges {
		p.renderer.AddEdge(&p.tree.Edges[i])
	}
	for i := range p.tree.Annotations {
		p.renderer.AddAnnotation(&p.tree.Annotations[i])
	}
}

// UpdateEdgeColours recolours the current edges from the track data. When
// updateLive is set the renderer is told to apply the new colours; otherwise
// they take effect the next time the renderer reads the edges.
func (p *Plotter) UpdateEdgeColours(ctx context.Context, updateLive bool) {
	n := 0
	if p.tracks != nil {
		n = layout.RefreshColours(p.tree.Edges, p.tracks.Colour)
	}
	observability.Draw().OnRefresh(ctx, n, updateLive)
	if updateLive {
		p.renderer.ApplyColourUpdate()
	}
}

// Highlight changes which label is shown opaque and applies it live.
func (p *Plotter) Highlight(id *int64) {
	p.highlighted = id
	layout.Highlight(p.tree.Annotations, id, p.opts.Highlight)
	p.renderer.ApplyColourUpdate()
}
