package lineage

// TimeRange is the first and last frame in which a track has points.
type TimeRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Span returns the number of frames between Min and Max.
func (r TimeRange) Span() int64 { return r.Max - r.Min }

// TreeNode is one track of an extracted subtree.
//
// Generation is the depth below the tree's root (root = 1). It is assigned
// once, from the parent through which breadth-first traversal first reached
// the track. Children lists every forward child, including children that
// were reached earlier through another parent.
type TreeNode struct {
	ID         int64     `json:"id"`
	Time       TimeRange `json:"time"`
	Generation int       `json:"generation"`
	Children   []int64   `json:"children,omitempty"`
}

// IsRoot reports whether the node starts its tree.
func (n TreeNode) IsRoot() bool { return n.Generation == 1 }

// IsLeaf reports whether the node has no children.
func (n TreeNode) IsLeaf() bool { return len(n.Children) == 0 }
