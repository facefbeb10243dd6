package sink

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/lineage"
	"github.com/matzehuels/arbor/pkg/lineage/layout"
)

func divisionTree() layout.Tree {
	nodes := []lineage.TreeNode{
		{ID: 1, Generation: 1, Children: []int64{2, 3}},
		{ID: 2, Generation: 2},
		{ID: 3, Generation: 2},
	}
	return layout.Build(nodes, layout.DefaultOptions())
}

func mergeTree() layout.Tree {
	nodes := []lineage.TreeNode{
		{ID: 1, Generation: 1, Children: []int64{2, 3}},
		{ID: 2, Generation: 2, Children: []int64{4}},
		{ID: 3, Generation: 2, Children: []int64{4}},
		{ID: 4, Generation: 3},
	}
	return layout.Build(nodes, layout.DefaultOptions())
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(divisionTree(), WithBackground(layout.Colour{A: 1})))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root: %.60s", svg)
	}
	if got := strings.Count(svg, "<line "); got != 5 {
		t.Errorf("lines = %d, want 5", got)
	}
	if got := strings.Count(svg, "<text "); got != 3 {
		t.Errorf("labels = %d, want 3", got)
	}
	if got := strings.Count(svg, "data-track="); got != 2 {
		t.Errorf("track edges = %d, want 2", got)
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("missing background")
	}
	if strings.Contains(svg, "stroke-dasharray") {
		t.Error("division has no merge, want no dashed edges")
	}
}

func TestRenderSVGDashedMerge(t *testing.T) {
	svg := string(RenderSVG(mergeTree()))
	if got := strings.Count(svg, "stroke-dasharray"); got != 1 {
		t.Errorf("dashed edges = %d, want 1", got)
	}
}

func TestSVGCanvasReadsColourUpdates(t *testing.T) {
	tree := divisionTree()
	c := NewSVGCanvas()
	c.fromTree(&tree)

	red := layout.Colour{R: 1, A: 1}
	layout.RefreshColours(tree.Edges, func(int64) (layout.Colour, bool) { return red, true })
	c.ApplyColourUpdate()

	svg := string(c.Bytes())
	if got := strings.Count(svg, `stroke="#ff0000"`); got != 2 {
		t.Errorf("red edges = %d, want 2", got)
	}
	if c.Updates() != 1 {
		t.Errorf("Updates() = %d, want 1", c.Updates())
	}
}

func TestSVGCanvasEmpty(t *testing.T) {
	c := NewSVGCanvas(WithMargin(10))
	if !c.Empty() {
		t.Fatal("Empty() = false, want true")
	}
	svg := string(c.Bytes())
	if !strings.Contains(svg, `width="20" height="20"`) {
		t.Errorf("empty canvas size wrong: %s", svg)
	}
}

func TestRenderText(t *testing.T) {
	got := RenderText(divisionTree())
	want := strings.Join([]string{
		"  │",
		"  │1",
		"┌─┴─┐",
		"│   │",
		"│   │",
		"│2  │3",
	}, "\n")
	if got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTextSingleNode(t *testing.T) {
	tree := layout.Build([]lineage.TreeNode{{ID: 7, Generation: 1}}, layout.DefaultOptions())
	if got := RenderText(tree); got != " 7" {
		t.Errorf("RenderText() = %q, want %q", got, " 7")
	}
}

func TestRenderTextEmpty(t *testing.T) {
	if got := RenderText(layout.Tree{}); got != "" {
		t.Errorf("RenderText() = %q, want empty", got)
	}
}

func TestRenderTextDashed(t *testing.T) {
	got := RenderText(mergeTree())
	if !strings.ContainsAny(got, "┆┄") {
		t.Errorf("merge edge not dashed:\n%s", got)
	}
}

func TestRenderTextHugeTimeSpan(t *testing.T) {
	opts := layout.DefaultOptions()
	opts.Axis = layout.AxisTime

	tests := []struct {
		name     string
		min, max int64
	}{
		{name: "EpochMillis", min: 1_700_000_000_000, max: 1_700_000_600_000},
		{name: "MinInt64", min: math.MinInt64, max: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := []lineage.TreeNode{
				{ID: 1, Generation: 1, Time: lineage.TimeRange{Min: tt.min, Max: tt.min + 10}, Children: []int64{2}},
				{ID: 2, Generation: 2, Time: lineage.TimeRange{Min: tt.max - 10, Max: tt.max}},
			}
			got := RenderText(layout.Build(nodes, opts))
			lines := strings.Split(got, "\n")
			if len(lines) > MaxTextRows+1 {
				t.Errorf("rows = %d, want at most %d", len(lines), MaxTextRows+1)
			}
			for _, label := range []string{"1", "2"} {
				if !strings.Contains(got, label) {
					t.Errorf("label %s missing", label)
				}
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(divisionTree(), WithJSONHighlight(layout.TrackID(2)), WithJSONAxis(layout.AxisGeneration))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Root != 1 {
		t.Errorf("Root = %d, want 1", out.Root)
	}
	if out.Highlight == nil || *out.Highlight != 2 {
		t.Errorf("Highlight = %v, want 2", out.Highlight)
	}
	if out.Axis != "generation" {
		t.Errorf("Axis = %q, want %q", out.Axis, "generation")
	}
	if len(out.Edges) != 5 {
		t.Errorf("Edges count = %d, want 5", len(out.Edges))
	}
	connectors := 0
	for _, e := range out.Edges {
		if e.ID == nil {
			connectors++
		}
	}
	if connectors != 3 {
		t.Errorf("connectors = %d, want 3", connectors)
	}
	if len(out.Annotations) != 3 {
		t.Errorf("Annotations count = %d, want 3", len(out.Annotations))
	}
}

func TestRenderJSONNullID(t *testing.T) {
	data, err := RenderJSON(divisionTree())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"id":null`) {
		t.Errorf("connector id not null: %s", data)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(layout.Tree{})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"edges":[]`) {
		t.Errorf("empty tree edges not an array: %s", data)
	}
}
