package events

import (
	"sync/atomic"

	"github.com/lixenwraith/scrollpace/parameter"
)

// Queue is a lock-free MPSC ring buffer for scheduler signals
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (scroll/resize observers)
//   - Consume: Single consumer (scheduler loop, once per tick)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest signals overwritten when full; signal bursts between two
// ticks carry no information beyond "recompute", so loss is benign
type Queue struct {
	signals   [parameter.SignalQueueSize]Signal
	published [parameter.SignalQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                          // Read index
	tail      atomic.Uint64                          // Write index
}

func NewQueue() *Queue {
	q := &Queue{}
	q.head.Store(0)
	q.tail.Store(0)
	return q
}

// Push adds a signal using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (q *Queue) Push(sig Signal) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.SignalBufferMask

			q.signals[idx] = sig
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread signals
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.SignalQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.SignalQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending signals in FIFO order and advances head
// Single-consumer design (scheduler loop). Checks published flags for safety
func (q *Queue) Consume() []Signal {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.SignalQueueSize {
			maxAvailable = parameter.SignalQueueSize
			currentHead = currentTail - parameter.SignalQueueSize
		}

		result := make([]Signal, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.SignalBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.signals[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}
