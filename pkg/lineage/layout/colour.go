package layout

import (
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/arbor/pkg/errors"
)

// Colour is an RGBA colour with channels in [0, 1].
type Colour struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Default colours used when no track colour is known.
var (
	DefaultEdgeColour  = Colour{R: 0.6, G: 0.6, B: 0.6, A: 1}
	DefaultLabelColour = Colour{R: 1, G: 1, B: 1, A: 1}
)

// ParseColour parses a "#rgb" or "#rrggbb" hex string into an opaque colour.
func ParseColour(s string) (Colour, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Colour{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid colour %q", s)
	}
	return Colour{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// Hex returns the colour as "#rrggbb", ignoring alpha.
func (c Colour) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Opacity formats the alpha channel for SVG attributes.
func (c Colour) Opacity() string {
	return strconv.FormatFloat(c.A, 'f', -1, 64)
}

// WithAlpha returns c with its alpha channel replaced.
func (c Colour) WithAlpha(a float64) Colour {
	c.A = a
	return c
}

// Blend interpolates between c and o in CIE-L*a*b* space; t=0 gives c and
// t=1 gives o. Alpha is interpolated linearly.
func (c Colour) Blend(o Colour, t float64) Colour {
	a := colorful.Color{R: c.R, G: c.G, B: c.B}
	b := colorful.Color{R: o.R, G: o.G, B: o.B}
	m := a.BlendLab(b, t).Clamped()
	return Colour{R: m.R, G: m.G, B: m.B, A: c.A + (o.A-c.A)*t}
}

// ColourFunc looks up the display colour of a track.
type ColourFunc func(id int64) (Colour, bool)

// RefreshColours recolours, in place, every edge that belongs to a track.
// Structural edges and edges whose track has no colour keep their colour.
// It returns the number of edges changed. Positions are never modified.
func RefreshColours(edges []Edge, fn ColourFunc) int {
	if fn == nil {
		return 0
	}
	n := 0
	for i := range edges {
		if edges[i].ID == nil {
			continue
		}
		if c, ok := fn(*edges[i].ID); ok {
			edges[i].Colour = c
			n++
		}
	}
	return n
}

// HighlightOptions sets the label alpha values used by [Highlight].
type HighlightOptions struct {
	Opaque float64 // alpha of the highlighted label
	Dimmed float64 // alpha of every other label
}

// DefaultHighlight returns the standard alpha values: 1 and 0.25.
func DefaultHighlight() HighlightOptions {
	return HighlightOptions{Opaque: 1, Dimmed: 0.25}
}

// Highlight sets the alpha of each annotation: opaque when its label is the
// highlighted track, dimmed otherwise. A nil id highlights nothing and leaves
// every label opaque; this intentionally differs from viewers that dim every
// label when no track is selected. To get that behaviour, pass an id that
// matches no label.
func Highlight(annotations []Annotation, id *int64, opts HighlightOptions) {
	if id == nil {
		for i := range annotations {
			annotations[i].Colour.A = opts.Opaque
		}
		return
	}
	label := strconv.FormatInt(*id, 10)
	for i := range annotations {
		if annotations[i].Label == label {
			annotations[i].Colour.A = opts.Opaque
		} else {
			annotations[i].Colour.A = opts.Dimmed
		}
	}
}
