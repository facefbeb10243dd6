package cli

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage/layout"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/plotter"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/render/nodelink"
	"github.com/matzehuels/arbor/pkg/render/tree/sink"
)

// Output formats.
const (
	formatSVG  = "svg"
	formatJSON = "json"
	formatDOT  = "dot"
	formatPDF  = "pdf"
	formatPNG  = "png"
	formatText = "txt"
)

// supportedFormats lists every format in the order shown in help text.
var supportedFormats = []string{formatSVG, formatJSON, formatDOT, formatPDF, formatPNG, formatText}

// Views select how a tree is drawn.
const (
	viewTree     = "tree"     // dendrogram from the layout engine
	viewNodeLink = "nodelink" // Graphviz node-link diagram
)

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	formats := strings.Split(s, ",")
	for i, f := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return formats
}

// validateView checks that v names a known view.
func validateView(v string) error {
	if v != viewTree && v != viewNodeLink {
		return errors.New(errors.ErrCodeInvalidInput, "invalid view: %s (must be %q or %q)", v, viewTree, viewNodeLink)
	}
	return nil
}

// drawing is one tree drawn onto an SVG canvas, ready to be encoded.
type drawing struct {
	plotter *plotter.Plotter
	canvas  *sink.SVGCanvas
	axis    layout.Axis
}

// draw extracts and lays out the tree containing id. With highlight unset
// every label stays opaque.
func (w *workspace) draw(ctx context.Context, id int64, highlight bool) (*drawing, error) {
	canvas := sink.NewSVGCanvas(w.cfg.SVGOptions()...)
	p := plotter.New(canvas, w.cfg.PlotterOptions())
	p.SetTracks(w.tracks)
	if err := p.DrawTree(ctx, id); err != nil {
		return nil, err
	}
	if !highlight {
		p.Highlight(nil)
	}
	return &drawing{plotter: p, canvas: canvas, axis: w.cfg.LayoutOptions().Axis}, nil
}

// root returns the root of the drawn tree.
func (d *drawing) root() int64 { return d.plotter.Tree().Root }

// render encodes the drawing in format and reports the result to the
// render hooks.
func (d *drawing) render(ctx context.Context, format, view string) ([]byte, error) {
	start := time.Now()
	data, err := d.encode(ctx, format, view)
	observability.Render().OnRender(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func (d *drawing) encode(ctx context.Context, format, view string) ([]byte, error) {
	dot := func() string {
		return nodelink.ToDOT(d.plotter.Nodes(), nodelink.Options{
			Detailed:  true,
			Highlight: d.plotter.Highlighted(),
		})
	}

	if view == viewNodeLink {
		switch format {
		case formatDOT:
			return []byte(dot()), nil
		case formatSVG:
			return nodelink.RenderSVG(ctx, dot())
		case formatPDF:
			return nodelink.RenderPDF(ctx, dot())
		case formatPNG:
			return nodelink.RenderPNG(ctx, dot(), defaultPNGScale)
		}
		return nil, errors.New(errors.ErrCodeUnsupported, "format %s is not available for the %s view", format, viewNodeLink)
	}

	switch format {
	case formatSVG:
		return d.canvas.Bytes(), nil
	case formatJSON:
		return sink.RenderJSON(d.plotter.Tree(),
			sink.WithJSONHighlight(d.plotter.Highlighted()),
			sink.WithJSONAxis(d.axis),
			sink.WithJSONIndent())
	case formatDOT:
		return []byte(dot()), nil
	case formatPDF:
		return render.ToPDF(ctx, d.canvas.Bytes())
	case formatPNG:
		return render.ToPNG(ctx, d.canvas.Bytes(), defaultPNGScale)
	case formatText:
		return []byte(sink.RenderText(d.plotter.Tree()) + "\n"), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
}

// contentType returns the MIME type served for format.
func contentType(format string) string {
	switch format {
	case formatSVG:
		return "image/svg+xml"
	case formatJSON:
		return "application/json"
	case formatDOT:
		return "text/vnd.graphviz"
	case formatPDF:
		return "application/pdf"
	case formatPNG:
		return "image/png"
	}
	return "text/plain; charset=utf-8"
}

// basePath derives the base output path from the output flag and the
// tracks source. If output is empty, it strips the extension from the
// source (for URLs, from the last path segment). If output has a format
// extension, that extension is stripped.
func basePath(output, source string) string {
	if output == "" {
		if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Host != "" {
			source = path.Base(u.Path)
		}
		return strings.TrimSuffix(source, filepath.Ext(source))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, f := range supportedFormats {
		if ext == f {
			return strings.TrimSuffix(output, "."+ext)
		}
	}
	return output
}
