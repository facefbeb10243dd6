// Package tracks holds the track data that lineage trees are built from.
//
// A [Tracks] value is the in-memory equivalent of a tracking layer: a table
// of points (track id, frame, position), the parent-pointer graph between
// tracks and a colour per track. It implements the data provider consumed by
// the plotter:
//
//	t, err := tracks.ReadFile("cells.json")
//	root, nodes, err := lineage.Build(t.Graph(), t, 140, lineage.ExtractOptions{})
//
// Tracks is immutable after construction and safe for concurrent readers.
package tracks

import (
	"maps"
	"slices"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage"
	"github.com/matzehuels/arbor/pkg/lineage/layout"
)

// Point is one row of the point table.
type Point struct {
	ID int64   // track id
	T  int64   // frame
	Y  float64 // row coordinate
	X  float64 // column coordinate
}

// Tracks is a point table plus the lineage graph between its tracks.
type Tracks struct {
	points  []Point
	graph   lineage.RawGraph
	ranges  map[int64]lineage.TimeRange
	ids     []int64
	rank    map[int64]int
	colours ColourMap
}

// Option configures [New].
type Option func(*Tracks)

// WithColourMap selects the colour map used by [Tracks.Colour].
func WithColourMap(c ColourMap) Option { return func(t *Tracks) { t.colours = c } }

// New indexes points and returns the track set. A nil graph means no
// lineage: every track is its own tree.
func New(points []Point, graph lineage.RawGraph, opts ...Option) *Tracks {
	if graph == nil {
		graph = lineage.RawGraph{}
	}
	t := &Tracks{
		points:  points,
		graph:   graph,
		ranges:  make(map[int64]lineage.TimeRange),
		colours: Turbo,
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, p := range points {
		r, ok := t.ranges[p.ID]
		if !ok {
			t.ranges[p.ID] = lineage.TimeRange{Min: p.T, Max: p.T}
			continue
		}
		r.Min = min(r.Min, p.T)
		r.Max = max(r.Max, p.T)
		t.ranges[p.ID] = r
	}

	t.ids = slices.Sorted(maps.Keys(t.ranges))
	t.rank = make(map[int64]int, len(t.ids))
	for i, id := range t.ids {
		t.rank[id] = i
	}
	return t
}

// Graph returns the child → parents graph. Callers must not modify it.
func (t *Tracks) Graph() lineage.RawGraph { return t.graph }

// TimeRange returns the first and last frame of track id.
func (t *Tracks) TimeRange(id int64) (lineage.TimeRange, error) {
	r, ok := t.ranges[id]
	if !ok {
		return lineage.TimeRange{}, errors.New(errors.ErrCodeNotFound, "track %d has no points", id)
	}
	return r, nil
}

// Colour returns the display colour of track id: the colour map sampled at
// the track's position among all track ids.
func (t *Tracks) Colour(id int64) (layout.Colour, bool) {
	i, ok := t.rank[id]
	if !ok {
		return layout.Colour{}, false
	}
	v := 0.0
	if len(t.ids) > 1 {
		v = float64(i) / float64(len(t.ids)-1)
	}
	return t.colours.At(v), true
}

// IDs returns all track ids in ascending order.
func (t *Tracks) IDs() []int64 { return slices.Clone(t.ids) }

// Points returns the point table. Callers must not modify it.
func (t *Tracks) Points() []Point { return t.points }

// Len returns the number of tracks.
func (t *Tracks) Len() int { return len(t.ids) }

// Roots returns the roots of the lineage graph in ascending order.
func (t *Tracks) Roots() []int64 {
	roots, _ := lineage.Invert(t.graph)
	return roots
}

// ColourMap returns the colour map in use.
func (t *Tracks) ColourMap() ColourMap { return t.colours }
