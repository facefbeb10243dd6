// Package nodelink renders lineage trees as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// each track is a box and each parent-child relationship is an arrow. It is
// an alternative to the dendrogram sinks when exact geometry does not matter
// and Graphviz's own placement is good enough.
//
// # Usage
//
// Convert an extracted subtree to DOT, then render to SVG:
//
//	_, nodes, err := lineage.Build(raw, store, query, lineage.ExtractOptions{})
//	dot := nodelink.ToDOT(nodes, nodelink.Options{Highlight: &query})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB). Tracks of the
// same generation share a rank. A relationship to a child that is already
// drawn under another parent (a merge) is dashed, matching the dendrogram.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
