package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage"
)

func mergeNodes() []lineage.TreeNode {
	return []lineage.TreeNode{
		{ID: 1, Generation: 1, Time: lineage.TimeRange{Min: 0, Max: 4}, Children: []int64{2, 3}},
		{ID: 2, Generation: 2, Time: lineage.TimeRange{Min: 5, Max: 9}, Children: []int64{4}},
		{ID: 3, Generation: 2, Time: lineage.TimeRange{Min: 5, Max: 8}, Children: []int64{4}},
		{ID: 4, Generation: 3, Time: lineage.TimeRange{Min: 10, Max: 12}},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(mergeNodes(), Options{})

	for _, want := range []string{
		"digraph G",
		`"1" [label="1"]`,
		`"1" -> "2";`,
		`"1" -> "3";`,
		`"2" -> "4";`,
		`"3" -> "4" [style=dashed];`,
		`{ rank=same; "2"; "3"; }`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
}

func TestToDOTSkipsMissingChildren(t *testing.T) {
	nodes := []lineage.TreeNode{{ID: 1, Generation: 1, Children: []int64{9}}}
	dot := ToDOT(nodes, Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("ToDOT() drew an edge to an absent node:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	n := mergeNodes()[1]
	tests := []struct {
		name     string
		detailed bool
		want     string
	}{
		{"simple", false, "2"},
		{"detailed", true, "2\ngeneration: 2\nframes: 5-9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(n, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmtAttrsHighlight(t *testing.T) {
	n := lineage.TreeNode{ID: 5}
	if got := fmtAttrs(n, "5", nil); len(got) != 1 {
		t.Errorf("fmtAttrs() without highlight = %v, want label only", got)
	}
	other := int64(6)
	if got := fmtAttrs(n, "5", &other); len(got) != 1 {
		t.Errorf("fmtAttrs() other highlight = %v, want label only", got)
	}
	self := int64(5)
	got := strings.Join(fmtAttrs(n, "5", &self), " ")
	if !strings.Contains(got, "penwidth") {
		t.Errorf("fmtAttrs() highlighted = %q, want penwidth", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(mergeNodes(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Fatal("RenderSVG() should return error for invalid DOT")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}
