// File: pool/cache.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-Thread Cache Layer. Go gives no portable, public identity for "the
// current OS thread" — goroutines are multiplexed M:N across threads — so
// rather than a global identity-keyed map (design note #9 steers away from
// exactly that), PTC is a fixed-size array of shards owned directly by the
// Pool instance. The common path picks a shard via a single atomic
// round-robin counter; Local() hands out an explicit handle for callers
// that want guaranteed single-shard affinity across a batch of calls.

package pool

import (
	"sync"
	"unsafe"
)

const (
	minShards = 4
	maxShards = 64
)

// shard is one PTC magazine. The trailing 64-byte padding keeps adjacent
// shards' mutexes and counters off the same cache line under contention.
type shard struct {
	mu        sync.Mutex
	freeHead  unsafe.Pointer
	freeCount int
	_         [64]byte
}

func shardCountFor(requested int) int {
	if requested < minShards {
		requested = minShards
	}
	if requested > maxShards {
		requested = maxShards
	}
	return requested
}

// Local is an explicit per-goroutine cache handle, pinned to one shard for
// its lifetime. Use it when a single goroutine issues many Allocate/
// Deallocate calls back to back and benefits from guaranteed affinity
// instead of the default per-call round robin.
type Local[T any] struct {
	pool  *Pool[T]
	shard *shard
}

// Allocate is equivalent to Pool.Allocate but always uses this handle's
// pinned shard.
func (l *Local[T]) Allocate() (*T, error) {
	return l.pool.allocateFrom(l.shard)
}

// Deallocate is equivalent to Pool.Deallocate but always uses this
// handle's pinned shard.
func (l *Local[T]) Deallocate(v *T) {
	l.pool.deallocateFrom(l.shard, v)
}
