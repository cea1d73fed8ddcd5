package dominate

import (
	"container/heap"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// candidate is a queued DMR with the utility it had when pushed. Entries
// are never updated in place; the queue relies on lazy invalidation
// against a side table of currently valid utilities.
type candidate struct {
	dmr     bigraph.NodeID
	utility int
	weight  float64
}

// candQueue is a max-priority queue ordered by utility, then weight, then
// ascending DMR ID so ties break deterministically.
type candQueue []candidate

func (q candQueue) Len() int { return len(q) }

func (q candQueue) Less(i, j int) bool {
	if q[i].utility != q[j].utility {
		return q[i].utility > q[j].utility
	}
	if q[i].weight != q[j].weight {
		return q[i].weight > q[j].weight
	}
	return q[i].dmr < q[j].dmr
}

func (q candQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *candQueue) Push(x any) { *q = append(*q, x.(candidate)) }

func (q *candQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	*q = old[:n-1]
	return c
}

// lazyQueue pairs the heap with the side table of valid utilities.
// Popped entries whose cached utility disagrees with the table are stale:
// they are re-queued at their current value instead of being accepted,
// which preserves the greedy algorithm's behavior without a
// decrease-key-capable heap.
type lazyQueue struct {
	heap  candQueue
	valid map[bigraph.NodeID]int
}

func newLazyQueue() *lazyQueue {
	return &lazyQueue{valid: make(map[bigraph.NodeID]int)}
}

// push queues a DMR at the given utility and records it as the valid value.
// DMRs with zero utility are excluded from the queue entirely.
func (q *lazyQueue) push(dmr bigraph.NodeID, utility int, weight float64) {
	if utility <= 0 {
		delete(q.valid, dmr)
		return
	}
	q.valid[dmr] = utility
	heap.Push(&q.heap, candidate{dmr: dmr, utility: utility, weight: weight})
}

// update lowers the valid utility for a DMR without touching queued
// entries; stale entries are discarded or re-queued on pop.
func (q *lazyQueue) update(dmr bigraph.NodeID, utility int) {
	if utility <= 0 {
		delete(q.valid, dmr)
		return
	}
	q.valid[dmr] = utility
}

// pop returns the highest-priority fresh candidate, re-queueing stale
// entries at their valid utility. Returns false when no candidates remain.
func (q *lazyQueue) pop() (candidate, bool) {
	for q.heap.Len() > 0 {
		c := heap.Pop(&q.heap).(candidate)
		current, ok := q.valid[c.dmr]
		if !ok {
			continue // dropped to zero utility since queued
		}
		if c.utility != current {
			heap.Push(&q.heap, candidate{dmr: c.dmr, utility: current, weight: c.weight})
			continue
		}
		delete(q.valid, c.dmr)
		return c, true
	}
	return candidate{}, false
}
