package index

import (
	"container/heap"

	"github.com/kozaktomas/face-index/internal/face"
)

// Match pairs a face with its squared distance to the active query.
type Match struct {
	Face     face.Face `json:"face"`
	Distance int64     `json:"distance"`
}

// matchQueue is a max-heap of matches ordered by distance. The worst
// candidate sits on top, so a bounded top-k set can evict in O(log n).
type matchQueue []Match

func (pq matchQueue) Len() int           { return len(pq) }
func (pq matchQueue) Less(i, j int) bool { return pq[i].Distance > pq[j].Distance }
func (pq matchQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *matchQueue) Push(x any) {
	*pq = append(*pq, x.(Match))
}

func (pq *matchQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// peek returns the worst match currently held without removing it.
func (pq matchQueue) peek() Match {
	return pq[0]
}

// pushBounded inserts a match and evicts the worst entry once the queue
// grows beyond k.
func (pq *matchQueue) pushBounded(m Match, k int) {
	heap.Push(pq, m)
	if len(*pq) > k {
		heap.Pop(pq)
	}
}
