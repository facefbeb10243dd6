// Package render turns laid-out lineage trees into files.
//
// # Overview
//
// This package holds the output side of Arbor:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Dendrogram output (in [tree/sink] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both subpackages use them.
//
//	canvas := sink.NewSVGCanvas()
//	p := plotter.New(canvas, plotter.DefaultOptions())
//	...
//	pdf, err := render.ToPDF(ctx, canvas.Bytes())
//	png, err := render.ToPNG(ctx, canvas.Bytes(), 2.0) // 2x scale
//
// # Dendrograms
//
// The [tree/sink] subpackage provides renderers that a plotter draws into:
// an SVG canvas, a terminal text canvas and a JSON export of the geometry.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders an extracted subtree as a directed graph
// using Graphviz, one rank per generation.
//
//	dot := nodelink.ToDOT(nodes, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [tree/sink]: github.com/matzehuels/arbor/pkg/render/tree/sink
// [nodelink]: github.com/matzehuels/arbor/pkg/render/nodelink
package render
