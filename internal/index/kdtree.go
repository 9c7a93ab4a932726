// Package index implements the in-memory similarity index: a balanced
// three-dimensional partition tree built by recursive median split, the
// nearest-neighbor search that walks it, and the bounded dataset the
// tree is rebuilt from.
package index

import (
	"github.com/kozaktomas/face-index/internal/face"
)

// MinPoints is the smallest sub-range worth splitting further. It also
// fixes the result size: a search returns up to MinPoints+1 matches.
const MinPoints = 4

// buildThreshold is the minimum dataset size for which a tree is built
// at all. Below it the dataset stays flat and searches fall back to a
// linear scan.
const buildThreshold = 2*MinPoints + 3

// Node is one vertex of the partition tree. A node either has both
// children (internal) or neither (leaf) - never exactly one. A leaf
// keeps every face of its sub-range, including a copy of its own pivot.
type Node struct {
	pivot       face.Face
	left, right *Node
	points      []face.Face
}

// Pivot returns the face this node splits on.
func (n *Node) Pivot() face.Face { return n.pivot }

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool { return n.left == nil }

// Build constructs a partition tree over a copy of the given faces, or
// returns nil when the set is too small to usefully split. The input
// slice is never mutated. Building twice from the same input order
// yields a structurally identical tree.
func Build(faces []face.Face) *Node {
	if len(faces) < buildThreshold {
		return nil
	}
	pts := make([]face.Face, len(faces))
	copy(pts, faces)
	return buildRange(pts, face.Dims-1, 0, len(pts)-1)
}

// buildRange splits pts[left..right] at the median of the next axis in
// the rotation. dim is the axis the caller split on; the axis sequence
// across depths is always race, emotion, oldness, race, ...
func buildRange(pts []face.Face, dim, left, right int) *Node {
	axis := (dim + 1) % face.Dims
	sortRange(pts, axis, left, right)

	mid := (left + right + 1) / 2
	// Push the split point to the start of a run of duplicate axis
	// values so the split is deterministic under ties.
	for mid > left && pts[mid].Axis(axis) == pts[mid-1].Axis(axis) {
		mid--
	}

	n := &Node{pivot: pts[mid]}
	if mid-left > MinPoints && right-mid > MinPoints {
		n.left = buildRange(pts, axis, left, mid-1)
		n.right = buildRange(pts, axis, mid+1, right)
		return n
	}
	n.points = append(n.points, pts[left:right+1]...)
	return n
}

// sortRange orders pts[left..right] ascending on the given axis using a
// Hoare-partition quicksort pivoting on the middle element.
func sortRange(pts []face.Face, axis, left, right int) {
	if left >= right {
		return
	}
	p := pts[(left+right)/2].Axis(axis)
	i, j := left, right
	for i <= j {
		for pts[i].Axis(axis) < p {
			i++
		}
		for pts[j].Axis(axis) > p {
			j--
		}
		if i <= j {
			pts[i], pts[j] = pts[j], pts[i]
			i++
			j--
		}
	}
	sortRange(pts, axis, left, j)
	sortRange(pts, axis, i, right)
}
