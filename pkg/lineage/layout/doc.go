// Package layout assigns 2D coordinates to an extracted lineage tree.
//
// # Placement
//
// [Build] uses the classic recursive dendrogram scheme:
//
//   - every leaf takes the next free unit slot, walking the tree depth-first
//     in child order, so siblings appear left to right as they are listed;
//   - every other node sits halfway between its first and last child.
//
// All descendants of a node therefore occupy one contiguous run of slots and
// no two branches cross. The vertical axis follows the generation (one row
// per generation) or, with [AxisTime], the frames in which a track exists.
//
// A track reachable from two parents (a merge) belongs to the parent that
// reached it first in the node list; the second relationship is still drawn,
// with [StyleDashed].
//
// # Output
//
// A [Tree] holds draw-ready primitives:
//
//   - [Edge]: a segment with a colour and line style. Edges with a nil ID are
//     structural (the vertical extent of a track); edges with an ID link a
//     parent to that child track and take the child's colour.
//   - [Annotation]: the track id as text, positioned at the end of the track.
//
// Geometry depends only on the ids, child order and generations (or time
// ranges) of the input, so repeated calls return identical coordinates.
// [RefreshColours] and [Highlight] change colours in place and never touch
// positions.
package layout
