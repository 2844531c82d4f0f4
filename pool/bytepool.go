// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BytePool is a size-classed byte-slice recycler: each power-of-two size
// class up to maxClass gets its own sync.Pool, mirroring the channel-per-
// bucket recycling shape used elsewhere for buffer pooling, but GC-
// cooperative rather than accounted — a byte scratch buffer disappearing
// under GC pressure loses nothing the caller can observe.

package pool

import (
	"sync"

	"github.com/momentics/hiocore/api"
)

const (
	minByteClass = 256
	maxByteClass = 1 << 20
)

// BytePool hands out []byte scratch buffers sized to the nearest power
// of two at or above the request, recycling them via per-class
// sync.Pool instances.
type BytePool struct {
	classes []*sync.Pool
	sizes   []int
}

var _ api.BytePool = (*BytePool)(nil)

// NewBytePool constructs a BytePool with size classes from 256B to 1MiB.
func NewBytePool() *BytePool {
	bp := &BytePool{}
	for size := minByteClass; size <= maxByteClass; size <<= 1 {
		size := size
		bp.sizes = append(bp.sizes, size)
		bp.classes = append(bp.classes, &sync.Pool{
			New: func() any { return make([]byte, size) },
		})
	}
	return bp
}

func (bp *BytePool) classFor(n int) int {
	for i, size := range bp.sizes {
		if n <= size {
			return i
		}
	}
	return -1
}

// Acquire returns a slice of length exactly n, backed by a recycled
// buffer from the smallest size class that fits when one exists.
func (bp *BytePool) Acquire(n int) []byte {
	idx := bp.classFor(n)
	if idx < 0 {
		return make([]byte, n)
	}
	buf := bp.classes[idx].Get().([]byte)
	return buf[:n]
}

// Release returns buf to its size class for reuse. Buffers larger than
// the largest class or smaller than the smallest are dropped for GC.
func (bp *BytePool) Release(buf []byte) {
	idx := bp.classFor(cap(buf))
	if idx < 0 || cap(buf) != bp.sizes[idx] {
		return
	}
	bp.classes[idx].Put(buf[:cap(buf)])
}
