package core

/*------------------------------------------------------------------
 *
 * Purpose:	C3 channel abstraction.  A unidirectional, unreliable
 *		carrier with sample-based drop and bit-flip corruption.
 *
 * Description:	Every decision (drop, corrupt, which byte/bit to
 *		flip) is drawn from the seeded *rand.Rand handed to
 *		NewChannel (RunOnce shares one between its data and ack
 *		channels) -- never the package-level default source --
 *		so that two runs with the same seed draw identical
 *		decisions in identical order (spec.md section 5).
 *
 *		Corruption is applied to the raw wire bytes before the
 *		item is enqueued, so it is visible to CRC verification
 *		on dequeue.  This is the simulator's semantics (spec.md
 *		section 9, first open question) -- the alternative
 *		"corrupt after decode" behavior is a bug and is not
 *		reproduced here.
 *
 *------------------------------------------------------------------*/

import (
	"container/heap"
	"math/rand"
)

// Channel is a unidirectional lossy carrier driven by wall-clock or
// virtual milliseconds, depending on how the caller drives now_ms.
type Channel struct {
	dropProb    float64
	corruptProb float64
	delayMs     int64
	rng         *rand.Rand

	queue   eventQueue
	nextSeq uint64
}

// NewChannel builds a channel with the given loss parameters, seeded
// from rng so its drop/corrupt decisions are reproducible.
func NewChannel(dropProb, corruptProb float64, delayMs int64, rng *rand.Rand) *Channel {
	return &Channel{
		dropProb:    dropProb,
		corruptProb: corruptProb,
		delayMs:     delayMs,
		rng:         rng,
	}
}

// Send samples the drop probability; on drop it enqueues nothing and
// returns false. Otherwise it may corrupt one bit before enqueueing
// the item for delivery at nowMs+delayMs.
func (c *Channel) Send(nowMs int64, data []byte) bool {
	if c.dropProb > 0 && c.rng.Float64() < c.dropProb {
		return false
	}

	payload := data
	if c.corruptProb > 0 && len(data) > 0 && c.rng.Float64() < c.corruptProb {
		payload = make([]byte, len(data))
		copy(payload, data)
		idx := c.rng.Intn(len(payload))
		bit := uint(c.rng.Intn(8))
		payload[idx] ^= 1 << bit
	}

	heap.Push(&c.queue, queuedItem{deliverAt: nowMs + c.delayMs, seq: c.nextSeq, data: payload})
	c.nextSeq++
	return true
}

// Drain returns, in deliver_at order (ties broken by enqueue order),
// every item whose deliverAt is at or before nowMs, removing them from
// the queue.
func (c *Channel) Drain(nowMs int64) [][]byte {
	var ready [][]byte
	for {
		it, ok := c.queue.peek()
		if !ok || it.deliverAt > nowMs {
			break
		}
		heap.Pop(&c.queue)
		ready = append(ready, it.data)
	}
	return ready
}

// NextDeliverable returns the earliest pending deliverAt time, and
// false if the queue is empty.
func (c *Channel) NextDeliverable() (int64, bool) {
	it, ok := c.queue.peek()
	if !ok {
		return 0, false
	}
	return it.deliverAt, true
}
