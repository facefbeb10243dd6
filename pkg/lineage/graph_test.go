package lineage

import (
	"reflect"
	"slices"
	"testing"
)

func TestInvert(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawGraph
		wantRoots []int64
		wantFwd   ForwardGraph
	}{
		{
			name:      "Empty",
			raw:       RawGraph{},
			wantRoots: []int64{},
			wantFwd:   ForwardGraph{},
		},
		{
			name:      "Division",
			raw:       RawGraph{2: {1}, 3: {1}},
			wantRoots: []int64{1},
			wantFwd:   ForwardGraph{1: {2, 3}},
		},
		{
			name:      "TwoGenerations",
			raw:       RawGraph{2: {1}, 3: {1}, 4: {2}, 5: {2}},
			wantRoots: []int64{1},
			wantFwd:   ForwardGraph{1: {2, 3}, 2: {4, 5}},
		},
		{
			name:      "Forest",
			raw:       RawGraph{11: {10}, 12: {10}, 21: {20}, 2: {1}},
			wantRoots: []int64{1, 10, 20},
			wantFwd:   ForwardGraph{1: {2}, 10: {11, 12}, 20: {21}},
		},
		{
			name:      "Merge",
			raw:       RawGraph{3: {1, 2}},
			wantRoots: []int64{1, 2},
			wantFwd:   ForwardGraph{1: {3}, 2: {3}},
		},
		{
			name:      "ChildWithoutParents",
			raw:       RawGraph{5: {}},
			wantRoots: []int64{},
			wantFwd:   ForwardGraph{},
		},
		{
			name:      "Cycle",
			raw:       RawGraph{1: {2}, 2: {1}},
			wantRoots: []int64{},
			wantFwd:   ForwardGraph{1: {2}, 2: {1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, fwd := Invert(tt.raw)
			if len(roots) != len(tt.wantRoots) || (len(roots) > 0 && !slices.Equal(roots, tt.wantRoots)) {
				t.Errorf("roots = %v, want %v", roots, tt.wantRoots)
			}
			if !reflect.DeepEqual(fwd, tt.wantFwd) {
				t.Errorf("forward = %v, want %v", fwd, tt.wantFwd)
			}
		})
	}
}

func TestInvertRootsNeverChildren(t *testing.T) {
	raw := RawGraph{
		2: {1}, 3: {1}, 4: {3}, 5: {3}, 6: {5},
		8: {7}, 9: {7, 4}, 10: {9},
	}
	roots, _ := Invert(raw)

	for _, r := range roots {
		if _, ok := raw[r]; ok {
			t.Errorf("root %d is a child in the raw graph", r)
		}
	}
	for child := range raw {
		if slices.Contains(roots, child) {
			t.Errorf("child %d reported as root", child)
		}
	}
	if !slices.IsSorted(roots) {
		t.Errorf("roots = %v, want ascending order", roots)
	}
}

func TestInvertIdempotent(t *testing.T) {
	raw := RawGraph{2: {1}, 3: {1}, 4: {2}, 7: {6}, 8: {6}, 9: {8}}

	roots1, fwd1 := Invert(raw)
	roots2, fwd2 := Invert(raw)

	if !slices.Equal(roots1, roots2) {
		t.Errorf("roots differ between calls: %v vs %v", roots1, roots2)
	}
	if !reflect.DeepEqual(fwd1, fwd2) {
		t.Errorf("forward graphs differ between calls: %v vs %v", fwd1, fwd2)
	}
}

func TestLinearise(t *testing.T) {
	tests := []struct {
		name string
		fwd  ForwardGraph
		root int64
		want []int64
	}{
		{
			name: "SingleNode",
			fwd:  ForwardGraph{},
			root: 5,
			want: []int64{5},
		},
		{
			name: "BreadthFirst",
			fwd:  ForwardGraph{1: {2, 3}, 2: {4, 5}, 3: {6}},
			root: 1,
			want: []int64{1, 2, 3, 4, 5, 6},
		},
		{
			name: "Diamond",
			fwd:  ForwardGraph{1: {2, 3}, 2: {4}, 3: {4}},
			root: 1,
			want: []int64{1, 2, 3, 4},
		},
		{
			name: "Cycle",
			fwd:  ForwardGraph{1: {2}, 2: {1}},
			root: 1,
			want: []int64{1, 2},
		},
		{
			name: "SelfLoop",
			fwd:  ForwardGraph{1: {1, 2}},
			root: 1,
			want: []int64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Linearise(tt.fwd, tt.root)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Linearise() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineariseNoDuplicates(t *testing.T) {
	fwd := ForwardGraph{
		1: {2, 3, 4},
		2: {5, 6},
		3: {5, 6},
		4: {6, 1},
		5: {7},
		6: {7},
	}
	got := Linearise(fwd, 1)

	if got[0] != 1 {
		t.Errorf("first = %d, want root 1", got[0])
	}
	seen := make(map[int64]bool)
	for _, id := range got {
		if seen[id] {
			t.Errorf("id %d visited twice in %v", id, got)
		}
		seen[id] = true
	}
	if len(got) != 7 {
		t.Errorf("len = %d, want 7", len(got))
	}
}

func TestTimeRangeSpan(t *testing.T) {
	tests := []struct {
		r    TimeRange
		want int64
	}{
		{TimeRange{Min: 2, Max: 20}, 18},
		{TimeRange{Min: 5, Max: 5}, 0},
	}
	for _, tt := range tests {
		if got := tt.r.Span(); got != tt.want {
			t.Errorf("%+v.Span() = %d, want %d", tt.r, got, tt.want)
		}
	}
}
