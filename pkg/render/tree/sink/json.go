package sink

import (
	"encoding/json"

	"github.com/matzehuels/arbor/pkg/lineage/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	highlight *int64
	axis      string
	indent    bool
}

// WithJSONHighlight records the highlighted track.
func WithJSONHighlight(id *int64) JSONOption { return func(r *jsonRenderer) { r.highlight = id } }

// WithJSONAxis records the vertical axis used for the layout, e.g. "time".
func WithJSONAxis(a layout.Axis) JSONOption { return func(r *jsonRenderer) { r.axis = a.String() } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Root        int64            `json:"root"`
	Axis        string           `json:"axis,omitempty"`
	Highlight   *int64           `json:"highlight,omitempty"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Nodes       []jsonNode       `json:"nodes"`
	Edges       []jsonEdge       `json:"edges"`
	Annotations []jsonAnnotation `json:"annotations"`
}

type jsonNode struct {
	ID         int64   `json:"id"`
	Generation int     `json:"generation"`
	Slot       float64 `json:"slot"`
	X          float64 `json:"x"`
	Top        float64 `json:"top"`
	Bottom     float64 `json:"bottom"`
}

type jsonEdge struct {
	ID      *int64  `json:"id"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Colour  string  `json:"colour"`
	Opacity float64 `json:"opacity"`
	Style   string  `json:"style"`
}

type jsonAnnotation struct {
	Label   string  `json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Colour  string  `json:"colour"`
	Opacity float64 `json:"opacity"`
}

// RenderJSON exports the tree geometry. Extent connectors have a null id.
func RenderJSON(t layout.Tree, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Root:        t.Root,
		Axis:        r.axis,
		Highlight:   r.highlight,
		Width:       t.Bounds.Width(),
		Height:      t.Bounds.Height(),
		Nodes:       make([]jsonNode, 0, len(t.Nodes)),
		Edges:       make([]jsonEdge, 0, len(t.Edges)),
		Annotations: make([]jsonAnnotation, 0, len(t.Annotations)),
	}
	for _, n := range t.Nodes {
		out.Nodes = append(out.Nodes, jsonNode{
			ID: n.ID, Generation: n.Generation, Slot: n.Slot,
			X: n.X, Top: n.Top, Bottom: n.Bottom,
		})
	}
	for _, e := range t.Edges {
		out.Edges = append(out.Edges, jsonEdge{
			ID: e.ID,
			X1: e.Start.X, Y1: e.Start.Y,
			X2: e.End.X, Y2: e.End.Y,
			Colour:  e.Colour.Hex(),
			Opacity: e.Colour.A,
			Style:   e.Style.String(),
		})
	}
	for _, a := range t.Annotations {
		out.Annotations = append(out.Annotations, jsonAnnotation{
			Label: a.Label,
			X:     a.Position.X, Y: a.Position.Y,
			Colour:  a.Colour.Hex(),
			Opacity: a.Colour.A,
		})
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
