// Package pkg provides the libraries behind the arbor lineage tree viewer.
//
// # Overview
//
// Arbor turns tracking data (points per track plus a child → parents graph)
// into drawable lineage trees. The pkg directory is organized as follows:
//
//  1. [lineage] - graph inversion and subtree extraction
//  2. [lineage/layout] - dendrogram geometry, colours and highlighting
//  3. [plotter] - drives a renderer from a track set
//  4. [render] - SVG, text, JSON, PDF, PNG and Graphviz output
//  5. [tracks] - in-memory track sets, colour maps, JSON/CSV loading
//
// # Architecture
//
// The typical data flow:
//
//	JSON/CSV tracks (file or URL)
//	         ↓
//	    [tracks] package (index points, colour map)
//	         ↓
//	    [lineage] package (invert graph, extract the tree of one track)
//	         ↓
//	    [lineage/layout] package (edges, labels, bounds)
//	         ↓
//	    [plotter] package → renderer (SVG canvas, text canvas)
//	         ↓
//	    SVG/PDF/PNG/JSON/DOT/text output
//
// # Quick Start
//
// Draw the tree containing track 7 as SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/arbor/pkg/plotter"
//	    "github.com/matzehuels/arbor/pkg/render/tree/sink"
//	    "github.com/matzehuels/arbor/pkg/tracks"
//	)
//
//	t, _ := tracks.ReadFile("cells.json")
//	canvas := sink.NewSVGCanvas()
//	p := plotter.New(canvas, plotter.DefaultOptions())
//	p.SetTracks(t)
//	if err := p.DrawTree(context.Background(), 7); err != nil {
//	    // the canvas still holds the previous tree
//	}
//	svg := canvas.Bytes()
//
// # Supporting Packages
//
// [config] - TOML configuration with validation.
//
// [errors] - Coded errors shared by every package and mapped to exit
// messages and HTTP statuses.
//
// [observability] - Draw and render hooks; [observability/metrics] exports
// them to Prometheus.
//
// [httputil] - Retrying HTTP GET used to load remote track sets.
//
// [buildinfo] - Version information set at build time.
//
// [lineage]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/lineage
// [lineage/layout]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/lineage/layout
// [plotter]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/plotter
// [render]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render
// [tracks]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tracks
// [config]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/observability
// [observability/metrics]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/observability/metrics
// [httputil]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/buildinfo
package pkg
