// Package lineage reconstructs lineage trees from a parent-pointer graph.
//
// # Overview
//
// Tracking pipelines record ancestry as "child → parents" pairs: a track that
// starts after a division lists the track it split from. This package turns
// that sparse, backwards-pointing data into something that can be drawn:
//
//  1. [Invert] flips a [RawGraph] into a [ForwardGraph] (parent → children)
//     and collects the roots, the tracks that are parents but never children.
//  2. [Linearise] flattens one root's tree into a breadth-first id sequence,
//     which [Extract] uses to find the tree that holds a query track.
//  3. [Extract] walks that tree breadth-first and materialises a [TreeNode]
//     per track, with its generation (root = 1) and its time range read from
//     a [PointStore].
//
// The resulting node list is consumed by the layout package, which assigns
// coordinates to every node and edge.
//
// # Degenerate Input
//
// A query track that belongs to no tree is returned on its own as a
// single-node tree. Cycles in the raw graph are not an error: every traversal
// keeps a visited set and never enters a track twice, so a cycle simply ends
// the walk.
//
// # Determinism
//
// Go maps are unordered, so [Invert] visits children in ascending id order.
// Roots are returned sorted. Given the same [RawGraph], every function in this
// package returns identical results.
//
// # Concurrency
//
// All functions are pure over their inputs. Callers that mutate a [RawGraph]
// concurrently must hand in a consistent snapshot.
package lineage
