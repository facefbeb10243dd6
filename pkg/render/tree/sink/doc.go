// Package sink provides renderers for laid-out lineage trees.
//
// # Overview
//
// A sink receives the primitives of a [layout.Tree], either through the
// plotter's Renderer interface or directly from a Tree value, and produces
// an output format:
//
//   - [SVGCanvas]: scalable vector graphics
//   - [TextCanvas]: a rune grid for terminals, optionally coloured
//   - [RenderJSON]: the geometry as JSON for external tools
//   - [RenderPDF] and [RenderPNG]: SVG converted with rsvg-convert
//
// # Canvases
//
// Both canvases implement the plotter's Renderer interface. They keep the
// edge and annotation pointers handed to them, so a colour refresh performed
// by the plotter shows up the next time the canvas is rendered:
//
//	canvas := sink.NewSVGCanvas(sink.WithBackground(bg))
//	p := plotter.New(canvas, plotter.DefaultOptions())
//	p.SetTracks(t)
//	if err := p.DrawTree(ctx, 140); err != nil {
//	    return err
//	}
//	svg := canvas.Bytes()
//
// # JSON Output
//
// [RenderJSON] writes every edge with its track id (null for the vertical
// extent connectors), its end points, colour and line style, followed by
// the annotations and node placements.
//
// [layout.Tree]: github.com/matzehuels/arbor/pkg/lineage/layout.Tree
package sink
