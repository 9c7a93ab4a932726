package index

import (
	"container/heap"
	"testing"
)

func TestMatchQueueWorstOnTop(t *testing.T) {
	var q matchQueue
	for _, d := range []int64{5, 1, 9, 3, 7} {
		heap.Push(&q, Match{Distance: d})
	}

	want := []int64{9, 7, 5, 3, 1}
	for i, w := range want {
		if got := heap.Pop(&q).(Match).Distance; got != w {
			t.Fatalf("pop %d = %d; want %d", i, got, w)
		}
	}
}

func TestPushBounded(t *testing.T) {
	var q matchQueue
	for d := int64(10); d >= 1; d-- {
		q.pushBounded(Match{Distance: d}, 3)
	}

	if q.Len() != 3 {
		t.Fatalf("Len = %d; want 3", q.Len())
	}
	// The three closest survive; the worst of them is on top.
	if got := q.peek().Distance; got != 3 {
		t.Errorf("peek = %d; want 3", got)
	}
}
