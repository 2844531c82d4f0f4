// File: pool/objpool.go
// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT
//
// SyncPool is a thin generic wrapper over sync.Pool for objects whose
// eviction under GC pressure is harmless — batch cursors, scratch byte
// slices, temporary formatting buffers. It must never hold SAC blocks
// themselves: sync.Pool drops items silently between GC cycles, which
// would violate the free/allocated/total accounting invariant Pool[T]
// maintains explicitly via its own free-lists.

package pool

import (
	"sync"

	"github.com/momentics/hiocore/api"
)

// SyncPool wraps sync.Pool for generic, GC-cooperative scratch recycling.
type SyncPool[T any] struct {
	pool *sync.Pool
}

var _ api.ObjectPool[int] = (*SyncPool[int])(nil)

// NewSyncPool creates a new SyncPool with a creator function.
func NewSyncPool[T any](creator func() T) *SyncPool[T] {
	return &SyncPool[T]{
		pool: &sync.Pool{New: func() any { return creator() }},
	}
}

func (sp *SyncPool[T]) Get() T {
	return sp.pool.Get().(T)
}

func (sp *SyncPool[T]) Put(obj T) {
	sp.pool.Put(obj)
}
