//go:build !linux && !windows
// +build !linux,!windows

// File: pool/chunk_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable fallback chunk backing storage for platforms without a native
// page allocator hook. The header-prefix alignment scheme in chunk.go still
// applies on top of this; only the source of the over-allocated region
// differs.

package pool

type heapPageAllocator struct{}

func (heapPageAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (heapPageAllocator) Free(raw []byte) {
	// GC reclaims it once unreachable; nothing to do.
}

var defaultPageAllocator pageAllocator = heapPageAllocator{}
