package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage"
	"github.com/matzehuels/arbor/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the generation and frame range to node labels.
	// When false, only the track id is shown.
	Detailed bool

	// Highlight outlines one track in bold. Nil highlights nothing.
	Highlight *int64
}

// ToDOT converts an extracted subtree to Graphviz DOT. nodes must be in the
// order produced by [lineage.Extract]. The result can be rendered using
// [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(nodes []lineage.TreeNode, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	present := make(map[int64]bool, len(nodes))
	ranks := make(map[int][]int64)
	for _, n := range nodes {
		present[n.ID] = true
		ranks[n.Generation] = append(ranks[n.Generation], n.ID)
	}

	for _, n := range nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), opts.Highlight)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, gen := range slices.Sorted(maps.Keys(ranks)) {
		ids := make([]string, 0, len(ranks[gen]))
		for _, id := range ranks[gen] {
			ids = append(ids, strconv.Quote(nodeID(id)))
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	buf.WriteString("\n")
	owned := make(map[int64]bool, len(nodes))
	for _, n := range nodes {
		for _, child := range n.Children {
			if !present[child] {
				continue
			}
			if owned[child] {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", nodeID(n.ID), nodeID(child))
				continue
			}
			owned[child] = true
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(n.ID), nodeID(child))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int64) string { return strconv.FormatInt(id, 10) }

func fmtLabel(n lineage.TreeNode, detailed bool) string {
	if !detailed {
		return nodeID(n.ID)
	}
	return fmt.Sprintf("%d\ngeneration: %d\nframes: %d-%d", n.ID, n.Generation, n.Time.Min, n.Time.Max)
}

func fmtAttrs(n lineage.TreeNode, label string, highlight *int64) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if highlight != nil && *highlight == n.ID {
		attrs = append(attrs, "penwidth=4", "fillcolor=lightyellow")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
