// File: framing/framer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package framing

// Kind selects which framer shape Create builds.
type Kind int

const (
	KindIncremental Kind = iota
	KindRingBuffer
)

// Framer is the shared contract between Incremental and RingBuffer.
type Framer interface {
	// Push feeds bytes into the framer; completed values are emitted
	// to the onJSON callback given at construction.
	Push(data []byte)

	// Clear discards any partially buffered value and resets state.
	Clear()

	// Stats reports how many bytes are currently buffered awaiting
	// completion of the in-progress value.
	Stats() FramerStats
}

// FramerStats is a snapshot of a framer's buffering state.
type FramerStats struct {
	BufferedBytes int
	Capacity      int
}

// Create builds a Framer of the requested kind. bufferSize is the
// RingBuffer's initial capacity and is ignored for Incremental.
func Create(kind Kind, onJSON func([]byte), onError func(error), bufferSize int) (Framer, error) {
	switch kind {
	case KindIncremental:
		return NewIncremental(onJSON, onError), nil
	case KindRingBuffer:
		return NewRingBuffer(onJSON, onError, bufferSize), nil
	default:
		return nil, ErrInvalidParserKind
	}
}
