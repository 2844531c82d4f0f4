// File: pool/audit.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Debug Audit Layer: leak tracking, double-free/invalid-free detection, and
// dead-pattern poisoning. Only active when Config.Debug is set; the common
// allocate/deallocate path pays nothing for it otherwise.

package pool

import (
	"sync"
	"unsafe"
)

// deadSentinel is written, one uint32 at a time, over a freed block's
// payload so a subsequent read through a stale pointer reads recognizable
// garbage rather than plausible data.
const deadSentinel uint32 = 0xDEADBEEF

// auditSet tracks currently-issued block pointers. Its mutex is the
// innermost lock in the pool's lock order (shard -> global -> audit); SAC
// never calls into user code while holding it.
type auditSet struct {
	mu    sync.Mutex
	live  map[unsafe.Pointer]struct{}
}

func newAuditSet() *auditSet {
	return &auditSet{live: make(map[unsafe.Pointer]struct{})}
}

// record marks p as issued. Called once per successful Allocate.
func (a *auditSet) record(p unsafe.Pointer) {
	a.mu.Lock()
	a.live[p] = struct{}{}
	a.mu.Unlock()
}

// remove marks p as returned, reporting whether it was actually live.
// A false return is ErrInvalidFree at the caller.
func (a *auditSet) remove(p unsafe.Pointer) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.live[p]; !ok {
		return false
	}
	delete(a.live, p)
	return true
}

// count returns the number of still-live (leaked, if at teardown) blocks.
func (a *auditSet) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// poison overwrites blockSize bytes starting at p with deadSentinel,
// repeated. Called after a successful debug-mode deallocate, before the
// block rejoins any free-list.
func poison(p unsafe.Pointer, blockSize uintptr) {
	n := int(blockSize / 4)
	words := unsafe.Slice((*uint32)(p), n)
	for i := range words {
		words[i] = deadSentinel
	}
	for i := n * 4; i < int(blockSize); i++ {
		*(*byte)(unsafe.Add(p, i)) = byte(deadSentinel >> ((i % 4) * 8))
	}
}
