// File: pool/chunk.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Aligned slab chunk allocation. A chunk is one contiguous over-allocated
// region; block boundaries inside it are computed, never separately
// allocated. The header-prefix scheme lets any alignment be satisfied even
// when the backing allocator (mmap, VirtualAlloc, the Go heap) only
// guarantees page or pointer alignment: over-allocate
// size + sizeof(uintptr) + (alignment-1) bytes, round the user address up
// to alignment, and write the raw base address into the word immediately
// preceding it. Release does not read that word back: it frees the
// backing slice kept in chunk.raw.

package pool

import "unsafe"

const ptrSize = unsafe.Sizeof(uintptr(0))

// pageAllocator is the platform hook for chunk-sized backing storage.
// chunk_linux.go, chunk_windows.go and chunk_other.go each provide one.
type pageAllocator interface {
	Alloc(size int) ([]byte, error)
	Free(raw []byte)
}

// chunk is one slab: chunkBlockCount contiguous, block-aligned blocks,
// owned exclusively by the pool that grew it. Chunks are never freed
// individually while blocks from them may still be reachable; only on
// pool teardown (or explicit, verified release under memory pressure,
// see Config.ReleaseUnderPressure).
type chunk struct {
	raw        []byte  // backing storage; keeps GC-tracked memory alive
	base       uintptr // aligned first-block address, inside raw
	blockSize  uintptr
	blockCount int
}

// alignUp rounds p up to the next multiple of align. align must be a
// power of two.
func alignUp(p, align uintptr) uintptr {
	return (p + align - 1) &^ (align - 1)
}

// newChunk over-allocates via alloc, carves out an aligned blockCount*blockSize
// region, and records the raw base pointer in the header word immediately
// preceding the aligned region. Nothing in this package reads that word:
// release uses chunk.raw, and Pool.ValidatePointer walks the chunk list
// and checks each chunk's bounds.
func newChunk(blockSize uintptr, blockCount int, alignment uintptr, alloc pageAllocator) (*chunk, error) {
	payload := blockSize * uintptr(blockCount)
	overAlloc := payload + ptrSize + (alignment - 1)

	raw, err := alloc.Alloc(int(overAlloc))
	if err != nil {
		return nil, err
	}

	rawBase := uintptr(unsafe.Pointer(&raw[0]))
	aligned := alignUp(rawBase+ptrSize, alignment)

	// Header word immediately preceding the aligned region holds rawBase,
	// so a pointer-only view of the chunk (no access to the []byte header)
	// could still recover where the allocation started.
	headerAddr := aligned - ptrSize
	*(*uintptr)(unsafe.Pointer(headerAddr)) = rawBase

	return &chunk{
		raw:        raw,
		base:       aligned,
		blockSize:  blockSize,
		blockCount: blockCount,
	}, nil
}

// blockAt returns the address of the i-th block in the chunk.
func (c *chunk) blockAt(i int) unsafe.Pointer {
	return unsafe.Pointer(c.base + uintptr(i)*c.blockSize)
}

// contains reports whether p lies within this chunk's block region and is
// block-aligned within it, implementing DAL's validate_pointer contract.
func (c *chunk) contains(p unsafe.Pointer) bool {
	addr := uintptr(p)
	end := c.base + uintptr(c.blockCount)*c.blockSize
	if addr < c.base || addr >= end {
		return false
	}
	return (addr-c.base)%c.blockSize == 0
}

func (c *chunk) release(alloc pageAllocator) {
	alloc.Free(c.raw)
}
