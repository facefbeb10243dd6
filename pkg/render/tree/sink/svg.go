package sink

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/matzehuels/arbor/pkg/lineage/layout"
)

const (
	defaultScale     = 40.0
	defaultMargin    = 20.0
	defaultEdgeWidth = 2.0
	defaultFontSize  = 10.0
	dashPattern      = "4 3"
)

// SVGOption configures an [SVGCanvas].
type SVGOption func(*SVGCanvas)

// WithScale sets how many pixels one layout unit spans on each axis.
func WithScale(x, y float64) SVGOption {
	return func(c *SVGCanvas) { c.scaleX, c.scaleY = x, y }
}

// WithMargin sets the padding around the drawing in pixels.
func WithMargin(px float64) SVGOption { return func(c *SVGCanvas) { c.margin = px } }

// WithEdgeWidth sets the stroke width of edges in pixels.
func WithEdgeWidth(px float64) SVGOption { return func(c *SVGCanvas) { c.edgeWidth = px } }

// WithFontSize sets the label font size in pixels.
func WithFontSize(px float64) SVGOption { return func(c *SVGCanvas) { c.fontSize = px } }

// WithBackground fills the canvas with a solid colour.
func WithBackground(bg layout.Colour) SVGOption {
	return func(c *SVGCanvas) { c.background = &bg }
}

// SVGCanvas is a renderer that produces SVG documents.
type SVGCanvas struct {
	primitives
	scaleX, scaleY float64
	margin         float64
	edgeWidth      float64
	fontSize       float64
	background     *layout.Colour
}

// NewSVGCanvas returns an empty canvas.
func NewSVGCanvas(opts ...SVGOption) *SVGCanvas {
	c := &SVGCanvas{
		scaleX:    defaultScale,
		scaleY:    defaultScale,
		margin:    defaultMargin,
		edgeWidth: defaultEdgeWidth,
		fontSize:  defaultFontSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderSVG draws t onto a fresh canvas and returns the document.
func RenderSVG(t layout.Tree, opts ...SVGOption) []byte {
	c := NewSVGCanvas(opts...)
	c.fromTree(&t)
	return c.Bytes()
}

// Bytes returns the current drawing as an SVG document.
func (c *SVGCanvas) Bytes() []byte {
	var buf bytes.Buffer
	c.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes the current drawing as an SVG document to w.
func (c *SVGCanvas) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	b := c.bounds()
	width := b.Width()*c.scaleX + 2*c.margin + c.labelRoom()
	height := b.Height()*c.scaleY + 2*c.margin

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if c.background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", c.background.Hex())
	}

	fmt.Fprintf(&buf, `  <g class="edges" stroke-width="%.1f" stroke-linecap="round">`+"\n", c.edgeWidth)
	for _, e := range c.edges {
		c.renderEdge(&buf, b, e)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g class="labels" font-family="sans-serif" font-size="%.1f" dominant-baseline="middle">`+"\n", c.fontSize)
	for _, a := range c.annotations {
		c.renderLabel(&buf, b, a)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func (c *SVGCanvas) renderEdge(buf *bytes.Buffer, b layout.Bounds, e *layout.Edge) {
	x1, y1 := c.project(b, e.Start)
	x2, y2 := c.project(b, e.End)
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%s"`,
		x1, y1, x2, y2, e.Colour.Hex(), e.Colour.Opacity())
	if e.ID != nil {
		fmt.Fprintf(buf, ` data-track="%d"`, *e.ID)
	}
	if e.Style == layout.StyleDashed {
		fmt.Fprintf(buf, ` stroke-dasharray="%s"`, dashPattern)
	}
	buf.WriteString("/>\n")
}

func (c *SVGCanvas) renderLabel(buf *bytes.Buffer, b layout.Bounds, a *layout.Annotation) {
	x, y := c.project(b, a.Position)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" fill="%s" fill-opacity="%s">%s</text>`+"\n",
		x, y, a.Colour.Hex(), a.Colour.Opacity(), html.EscapeString(a.Label))
}

func (c *SVGCanvas) project(b layout.Bounds, p layout.Point) (float64, float64) {
	return c.margin + (p.X-b.MinX)*c.scaleX, c.margin + (p.Y-b.MinY)*c.scaleY
}

// labelRoom is the extra width needed so labels right of the last
// column are not clipped.
func (c *SVGCanvas) labelRoom() float64 {
	longest := 0
	for _, a := range c.annotations {
		longest = max(longest, len(a.Label))
	}
	return float64(longest) * c.fontSize * 0.6
}
