// File: framing/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingBuffer is a framer backed by a ring that grows on demand instead
// of an ever-appending slice. It detects completion with a live state
// machine fed byte by byte, but — because the ring has no record of
// exactly where an emitted value's first byte sits — extracts the
// emitted span with an independent re-scan starting from head, rather
// than trusting the live machine's bookkeeping.

package framing

import "github.com/momentics/hiocore/api"

const defaultInitialCapacity = 8192

// RingBuffer wraps stateMachine over a ring buffer.
type RingBuffer struct {
	bytes    []byte
	head     int
	tail     int
	capacity int

	sm      stateMachine
	onJSON  func([]byte)
	onError func(error)
	arena   api.BytePool
}

// NewRingBuffer constructs a RingBuffer framer with the given initial
// capacity (defaults to 8192 when <= 0), allocating its backing array
// directly.
func NewRingBuffer(onJSON func([]byte), onError func(error), initialCapacity int) *RingBuffer {
	return NewRingBufferWithArena(onJSON, onError, initialCapacity, nil)
}

// NewRingBufferWithArena is like NewRingBuffer but sources the backing
// array (and every array a grow allocates) from arena, so a long-lived
// framer under sustained large inputs recycles retired backing arrays
// instead of handing them to the GC. A nil arena behaves like
// NewRingBuffer.
func NewRingBufferWithArena(onJSON func([]byte), onError func(error), initialCapacity int, arena api.BytePool) *RingBuffer {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialCapacity
	}
	r := &RingBuffer{capacity: initialCapacity, onJSON: onJSON, onError: onError, arena: arena}
	if arena != nil {
		r.bytes = arena.Acquire(initialCapacity)
	} else {
		r.bytes = make([]byte, initialCapacity)
	}
	return r
}

// Push feeds data into the ring, growing it on demand and emitting any
// values it completes.
func (r *RingBuffer) Push(data []byte) {
	for _, c := range data {
		r.growIfNeeded()

		r.bytes[r.tail] = c
		r.tail = r.next(r.tail)

		if r.sm.feed(c) {
			value, newHead := r.rescanFromHead()
			r.onJSON(value)
			r.head = newHead
			r.sm.reset()
		}
	}
}

// Clear resets the framer to its freshly constructed state, dropping
// any bytes currently held in the ring.
func (r *RingBuffer) Clear() {
	r.head = 0
	r.tail = 0
	r.sm.reset()
}

// Stats reports the number of unconsumed bytes and the ring's current
// capacity.
func (r *RingBuffer) Stats() FramerStats {
	return FramerStats{BufferedBytes: r.logicalLen(r.head, r.tail), Capacity: r.capacity}
}

func (r *RingBuffer) next(i int) int {
	i++
	if i == r.capacity {
		return 0
	}
	return i
}

func (r *RingBuffer) logicalLen(head, tail int) int {
	return (tail - head + r.capacity) % r.capacity
}

// growIfNeeded doubles the ring's capacity when the tail is one slot
// away from wrapping onto head — the canonical one-short-of-full
// trigger — copying the logically ordered [head, tail) span to index 0
// of a fresh backing array.
func (r *RingBuffer) growIfNeeded() {
	if r.next(r.tail) != r.head {
		return
	}
	newCapacity := r.capacity * 2
	var newBytes []byte
	if r.arena != nil {
		newBytes = r.arena.Acquire(newCapacity)
	} else {
		newBytes = make([]byte, newCapacity)
	}
	n := r.logicalLen(r.head, r.tail)
	for i, p := 0, r.head; i < n; i, p = i+1, r.next(p) {
		newBytes[i] = r.bytes[p]
	}
	old := r.bytes
	r.bytes = newBytes
	r.capacity = newCapacity
	r.head = 0
	r.tail = n
	if r.arena != nil {
		r.arena.Release(old)
	}
}

// rescanFromHead walks the ring from head in logical order with a
// fresh state machine, independent of the live one, skipping any
// leading whitespace before the value starts (mirroring Incremental's
// cursor skip) and stopping the instant the fresh machine reports
// completion. It returns the emitted bytes and the index one past the
// last byte consumed.
func (r *RingBuffer) rescanFromHead() ([]byte, int) {
	var local stateMachine

	idx := r.head
	for !local.started && idx != r.tail && isWhitespace(r.bytes[idx]) {
		idx = r.next(idx)
	}
	start := idx

	for idx != r.tail {
		c := r.bytes[idx]
		idx = r.next(idx)
		if local.feed(c) {
			break
		}
	}

	n := r.logicalLen(start, idx)
	out := make([]byte, n)
	for i, p := 0, start; i < n; i, p = i+1, r.next(p) {
		out[i] = r.bytes[p]
	}
	return out, idx
}
