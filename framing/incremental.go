// File: framing/incremental.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Incremental is a linear-buffer framer: bytes accumulate in a growable
// slice behind a scan cursor, and completed values are sliced straight
// out of it. Emitted bytes preserve interior whitespace — the canonical
// behavior shared with RingBuffer, since the two framer shapes must
// agree on what they hand a caller.

package framing

// Incremental wraps stateMachine over a growable linear buffer.
type Incremental struct {
	buf     []byte
	cursor  int
	sm      stateMachine
	onJSON  func([]byte)
	onError func(error)
}

// NewIncremental constructs an Incremental framer. onJSON is invoked
// once per completed top-level value with its raw bytes; onError may be
// nil.
func NewIncremental(onJSON func([]byte), onError func(error)) *Incremental {
	return &Incremental{onJSON: onJSON, onError: onError}
}

// Push feeds data into the framer, emitting any values it completes.
// Partial bytes are retained across calls.
func (f *Incremental) Push(data []byte) {
	f.buf = append(f.buf, data...)

	for {
		for !f.sm.started && f.cursor < len(f.buf) && isWhitespace(f.buf[f.cursor]) {
			f.cursor++
		}
		if f.cursor >= len(f.buf) {
			return
		}

		c := f.buf[f.cursor]
		done := f.sm.feed(c)
		f.cursor++

		if done {
			start := 0
			for start < f.cursor && isWhitespace(f.buf[start]) {
				start++
			}
			value := make([]byte, f.cursor-start)
			copy(value, f.buf[start:f.cursor])
			f.onJSON(value)

			f.buf = append([]byte(nil), f.buf[f.cursor:]...)
			f.cursor = 0
			f.sm.reset()
			continue
		}

		if f.cursor >= len(f.buf) {
			return
		}
	}
}

// Clear resets the framer to its freshly constructed state, discarding
// any partially buffered value.
func (f *Incremental) Clear() {
	f.buf = f.buf[:0]
	f.cursor = 0
	f.sm.reset()
}

// Stats reports the number of bytes currently buffered awaiting
// completion of the in-progress value.
func (f *Incremental) Stats() FramerStats {
	return FramerStats{BufferedBytes: len(f.buf), Capacity: cap(f.buf)}
}
