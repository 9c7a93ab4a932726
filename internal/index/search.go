package index

import (
	"container/heap"
	"errors"

	"github.com/kozaktomas/face-index/internal/face"
)

// TopK is the number of matches a search returns, the query itself
// included.
const TopK = MinPoints + 1

// ErrNoResults means a search produced zero matches. The query is
// always appended when absent, so hitting this is a bug, not a caller
// error.
var ErrNoResults = errors.New("search produced no results")

// unset marks a radius bound that has not been established yet.
const unset = int64(-1)

// searchContext carries the mutable traversal state of one search:
// the bounded best-candidate heap, the outer/inner radius bounds and
// the backlog of replacement candidates. Each search gets a fresh
// context, so concurrent searches over the same tree never observe
// each other's scratch state.
type searchContext struct {
	query face.Face

	best    matchQueue // bounded to TopK, holds the running result set
	backlog matchQueue // candidates accumulated while no inner bound holds

	// outer approximates the k-th best distance found so far and drives
	// branch pruning. inner is the next-best known replacement, used to
	// tighten outer without re-scanning candidates on every leaf.
	outer, inner         int64
	outerFace, innerFace face.Face

	// Most recent internal pivot on the current root-to-leaf path.
	// Internal pivots live in no leaf list, so later leaf visits fold
	// it into their scan.
	lastPivot face.Face
	hasPivot  bool
}

// Search returns up to TopK faces close to the query, closest first.
// With a nil tree every face in all is scanned linearly and the result
// is exact. The tree walk is approximate: each leaf scan folds in only
// the most recent ancestor pivot, and the outer bound can tighten past
// a true neighbor before its leaf is reached. The query is appended to
// the results when no stored face shares its id.
func Search(query face.Face, root *Node, all []face.Face) ([]Match, error) {
	sc := &searchContext{query: query, outer: unset, inner: unset}

	if root == nil {
		for _, f := range all {
			heap.Push(&sc.best, Match{Face: f, Distance: face.DistanceSquared(query, f)})
		}
		return sc.results()
	}

	sc.walk(root, face.Dims-1)
	return sc.results()
}

// walk descends the tree near side first, mirroring the axis rotation
// used during the build. The far side is only entered while it can
// still intersect the outer radius.
func (sc *searchContext) walk(n *Node, dim int) {
	axis := (dim + 1) % face.Dims

	if n.Leaf() {
		sc.scanLeaf(n)
		return
	}

	near, far := n.left, n.right
	if sc.query.Axis(axis) > n.pivot.Axis(axis) {
		near, far = n.right, n.left
	}

	sc.lastPivot, sc.hasPivot = n.pivot, true
	sc.walk(near, axis)

	plane := int64(sc.query.Axis(axis) - n.pivot.Axis(axis))
	plane *= plane
	if sc.outer == unset || plane < sc.outer {
		sc.lastPivot, sc.hasPivot = n.pivot, true
		sc.walk(far, axis)
	}
}

// scanLeaf folds one leaf into the candidate set and maintains the
// radius bounds.
func (sc *searchContext) scanLeaf(n *Node) {
	if sc.outer == unset {
		// First leaf of this search: seed both bounds from the full
		// leaf. The scratch heap is drained down to MinPoints entries;
		// the last discarded match fixes the outer radius and the new
		// top the inner one.
		var scratch matchQueue
		for _, f := range n.points {
			m := Match{Face: f, Distance: face.DistanceSquared(sc.query, f)}
			heap.Push(&scratch, m)
			sc.best.pushBounded(m, TopK)
		}
		for scratch.Len() > MinPoints {
			out := heap.Pop(&scratch).(Match)
			sc.outer, sc.outerFace = out.Distance, out.Face
		}
		if sc.outer != unset && scratch.Len() > 0 {
			top := scratch.peek()
			sc.inner, sc.innerFace = top.Distance, top.Face
		}
		return
	}

	pts := n.points
	if sc.hasPivot {
		pts = append(append(make([]face.Face, 0, len(pts)+1), pts...), sc.lastPivot)
	}

	// fresh collects points seen while a tight inner bound holds; they
	// are replayed worst-first against the two radii below.
	var fresh matchQueue
	for _, f := range pts {
		d := face.DistanceSquared(sc.query, f)
		if d >= sc.outer {
			continue
		}
		m := Match{Face: f, Distance: d}
		sc.best.pushBounded(m, TopK)
		if sc.inner == unset {
			sc.accumulate(m)
		} else {
			heap.Push(&fresh, m)
		}
	}

	for fresh.Len() > 0 {
		m := heap.Pop(&fresh).(Match)
		if sc.inner == unset {
			sc.accumulate(m)
			continue
		}
		sc.absorb(m)
	}
}

// accumulate queues a candidate while no inner bound is established and
// promotes the worst queued candidate to the inner bound once enough
// have gathered.
func (sc *searchContext) accumulate(m Match) {
	heap.Push(&sc.backlog, m)
	if sc.backlog.Len() >= MinPoints {
		in := heap.Pop(&sc.backlog).(Match)
		sc.inner, sc.innerFace = in.Distance, in.Face
	}
}

// absorb adjusts the radius pair for one candidate known to have been
// closer than the outer radius when collected.
func (sc *searchContext) absorb(m Match) {
	if m.Distance >= sc.outer {
		// Outer has tightened past this candidate in the meantime.
		return
	}
	if m.Distance >= sc.inner {
		// Strictly between the radii: outer tightens for free.
		sc.outer, sc.outerFace = m.Distance, m.Face
		return
	}

	// Inside the inner radius: the inner bound becomes the new outer.
	sc.outer, sc.outerFace = sc.inner, sc.innerFace
	if sc.backlog.Len() == 0 {
		// Nothing left to promote; the next leaf re-establishes the
		// bound from scratch.
		sc.inner = unset
		return
	}
	if next := sc.backlog.peek(); next.Distance > m.Distance {
		// The point just processed is the tighter replacement; the
		// backlog entry stays queued.
		sc.inner, sc.innerFace = m.Distance, m.Face
		return
	}
	in := heap.Pop(&sc.backlog).(Match)
	sc.inner, sc.innerFace = in.Distance, in.Face
}

// results drains the candidate heap into its final ordering: worst
// first during the drain, then the closest TopK entries reversed so the
// single closest match leads.
func (sc *searchContext) results() ([]Match, error) {
	drained := make([]Match, 0, sc.best.Len()+1)
	for sc.best.Len() > 0 {
		drained = append(drained, heap.Pop(&sc.best).(Match))
	}

	found := false
	for _, m := range drained {
		if m.Face.ID == sc.query.ID {
			found = true
			break
		}
	}
	if !found {
		drained = append(drained, Match{Face: sc.query, Distance: 0})
	}

	if len(drained) > TopK {
		drained = drained[len(drained)-TopK:]
	}
	for i, j := 0, len(drained)-1; i < j; i, j = i+1, j-1 {
		drained[i], drained[j] = drained[j], drained[i]
	}

	if len(drained) == 0 {
		return nil, ErrNoResults
	}
	return drained, nil
}
