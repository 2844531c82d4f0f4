// Package pool implements a thread-caching, fixed-size object allocator:
// a global slab allocator (SAC) fronted by per-shard caches (PTC) and an
// optional debug audit layer (DAL) for leak and use-after-free detection.
//
// Blocks are issued as *T by Pool[T].Allocate/Construct and returned by
// Deallocate/Destroy. The common allocate/deallocate path touches only a
// shard-local free-list; the global free-list and chunk list are locked
// only on refill (shard empty) and flush (shard overfull).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package pool
