package core

/*------------------------------------------------------------------
 *
 * Purpose:	C7 virtual-time event queue: orders channel items by
 *		deliver_at, tie-broken by enqueue order, in O(log n)
 *		rather than the O(n) rescan a plain slice would need on
 *		every drain.
 *
 * Description:	A thin container/heap min-heap keyed on (deliverAt,
 *		seq). Channel owns one of these per direction; this file
 *		has no notion of drop/corrupt/delay sampling, which stays
 *		in channel.go. Pairing this queue with VirtualClock
 *		(clock.go) is what makes run_once's "advance now_ms to
 *		the next deliverable time" (spec.md section 4.7)
 *		instantaneous regardless of wall-clock scheduling.
 *
 *------------------------------------------------------------------*/

import "container/heap"

type queuedItem struct {
	deliverAt int64
	seq       uint64
	data      []byte
}

// eventQueue is a min-heap of queuedItem ordered by (deliverAt, seq).
type eventQueue []queuedItem

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].deliverAt != q[j].deliverAt {
		return q[i].deliverAt < q[j].deliverAt
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(queuedItem))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// peek returns the earliest item without removing it.
func (q eventQueue) peek() (queuedItem, bool) {
	if len(q) == 0 {
		return queuedItem{}, false
	}
	return q[0], true
}

var _ heap.Interface = (*eventQueue)(nil)
