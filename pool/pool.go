// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool[T] is the public slab allocator: SAC's global chunk/free-list state
// fronted by PTC's per-shard magazines, with DAL wired in when Config.Debug
// is set.

package pool

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/hiocore/api"
)

// Config configures a Pool[T].
type Config struct {
	// ChunkBlockCount is the number of blocks per chunk. Default 1024.
	ChunkBlockCount int

	// MaxChunks caps the number of chunks the pool will grow to; 0 means
	// unbounded.
	MaxChunks int

	// ThreadLocalCache enables the per-shard magazine layer. DefaultConfig
	// sets it true; New takes the field as given, so its zero value (false)
	// routes every Allocate/Deallocate through the global free-list and its
	// single mutex.
	ThreadLocalCache bool

	// Debug enables the audit layer: leak tracking on Close, invalid-free
	// detection, and dead-pattern poisoning on deallocate.
	Debug bool

	// ReleaseUnderPressure opts into releasing up to a quarter of the
	// chunk list (most-recently-allocated first) when a chunk grow fails,
	// retrying up to three times. Off by default: it is a best-effort
	// memory-pressure adaptation, not something most callers want.
	ReleaseUnderPressure bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		ChunkBlockCount:  1024,
		ThreadLocalCache: true,
	}
}

// Pool is a thread-caching fixed-size allocator for T.
type Pool[T any] struct {
	cfg       Config
	blockSize uintptr
	alignment uintptr
	alloc     pageAllocator

	globalMu    sync.Mutex
	chunks      []*chunk
	freeHead    unsafe.Pointer
	freeCount   int
	totalBlocks int

	shards   []*shard
	shardSel atomic.Uint32

	audit *auditSet
}

// New constructs a Pool for element type T. A ChunkBlockCount <= 0 falls
// back to 1024; every other field is used as given, so a zero Config yields
// a pool without shard caches. Start from DefaultConfig to get the
// documented defaults.
func New[T any](cfg Config) (*Pool[T], error) {
	if cfg.MaxChunks < 0 {
		return nil, fmt.Errorf("pool: MaxChunks must be >= 0: %w", api.ErrInvalidArgument)
	}
	if cfg.ChunkBlockCount <= 0 {
		cfg.ChunkBlockCount = 1024
	}

	var zero T
	size := unsafe.Sizeof(zero)
	if size < ptrSize {
		size = ptrSize
	}
	alignment := unsafe.Alignof(zero)
	if alignment < unsafe.Alignof(uintptr(0)) {
		alignment = unsafe.Alignof(uintptr(0))
	}

	p := &Pool[T]{
		cfg:       cfg,
		blockSize: alignUp(size, alignment),
		alignment: alignment,
		alloc:     defaultPageAllocator,
	}

	if cfg.Debug {
		p.audit = newAuditSet()
	}
	if cfg.ThreadLocalCache {
		n := shardCountFor(runtime.GOMAXPROCS(0))
		p.shards = make([]*shard, n)
		for i := range p.shards {
			p.shards[i] = &shard{}
		}
	}
	return p, nil
}

// Local returns an explicit per-goroutine cache handle pinned to one shard.
// Returns nil if ThreadLocalCache is disabled, in which case callers should
// just use Pool's own Allocate/Deallocate.
func (p *Pool[T]) Local() *Local[T] {
	if len(p.shards) == 0 {
		return nil
	}
	return &Local[T]{pool: p, shard: p.pickShard()}
}

func (p *Pool[T]) pickShard() *shard {
	if len(p.shards) == 0 {
		return nil
	}
	idx := p.shardSel.Add(1) % uint32(len(p.shards))
	return p.shards[idx]
}

// Allocate returns one uninitialized, block-sized, correctly aligned *T.
func (p *Pool[T]) Allocate() (*T, error) {
	return p.allocateFrom(p.pickShard())
}

// Deallocate returns v to the pool. A nil v is a no-op.
func (p *Pool[T]) Deallocate(v *T) {
	p.deallocateFrom(p.pickShard(), v)
}

// Construct allocates a block and runs init on it. If init fails, the
// block is returned to the pool before the error propagates.
func (p *Pool[T]) Construct(init func(*T) error) (*T, error) {
	v, err := p.Allocate()
	if err != nil {
		return nil, err
	}
	if init != nil {
		if err := init(v); err != nil {
			p.Deallocate(v)
			return nil, err
		}
	}
	return v, nil
}

// Destroy runs fin on v (if non-nil), then deallocates it.
func (p *Pool[T]) Destroy(v *T, fin func(*T)) {
	if fin != nil {
		fin(v)
	}
	p.Deallocate(v)
}

// Owned is a scope-bound handle that destroys its block exactly once: an
// io.Closer rather than a GC finalizer, since Go discourages relying on
// finalizers for timely resource release.
type Owned[T any] struct {
	pool   *Pool[T]
	value  *T
	fin    func(*T)
	closed atomic.Bool
}

// Get returns the underlying *T. Valid until Close.
func (o *Owned[T]) Get() *T { return o.value }

// Close destroys the underlying block. Safe to call more than once.
func (o *Owned[T]) Close() error {
	if o.closed.Swap(true) {
		return nil
	}
	o.pool.Destroy(o.value, o.fin)
	return nil
}

// MakeOwned allocates, initializes, and wraps a block in an Owned handle.
func (p *Pool[T]) MakeOwned(init func(*T) error, fin func(*T)) (*Owned[T], error) {
	v, err := p.Construct(init)
	if err != nil {
		return nil, err
	}
	return &Owned[T]{pool: p, value: v, fin: fin}, nil
}

// Reserve grows the pool so that at least nChunks chunks exist.
func (p *Pool[T]) Reserve(nChunks int) error {
	p.globalMu.Lock()
	defer p.globalMu.Unlock()
	for len(p.chunks) < nChunks {
		if err := p.growLocked(); err != nil {
			return err
		}
	}
	return nil
}

// FreeCount returns the number of blocks not currently held by a caller,
// across the global free-list and every shard.
func (p *Pool[T]) FreeCount() int {
	p.globalMu.Lock()
	total := p.freeCount
	p.globalMu.Unlock()
	for _, s := range p.shards {
		s.mu.Lock()
		total += s.freeCount
		s.mu.Unlock()
	}
	return total
}

// TotalCount returns the number of blocks in the pool's current chunks.
// It drops when chunks are released under pressure and is 0 after Close.
func (p *Pool[T]) TotalCount() int {
	p.globalMu.Lock()
	defer p.globalMu.Unlock()
	return p.totalBlocks
}

// AllocatedCount returns TotalCount() - FreeCount().
func (p *Pool[T]) AllocatedCount() int {
	return p.TotalCount() - p.FreeCount()
}

// ValidatePointer reports whether p was issued by this pool: it must lie
// inside some chunk and be block-aligned within it. O(chunk count).
func (p *Pool[T]) ValidatePointer(v *T) bool {
	p.globalMu.Lock()
	defer p.globalMu.Unlock()
	ptr := unsafe.Pointer(v)
	for _, c := range p.chunks {
		if c.contains(ptr) {
			return true
		}
	}
	return false
}

// PrintStats writes a human-readable snapshot to w.
func (p *Pool[T]) PrintStats(w io.Writer) {
	free := p.FreeCount()
	total := p.TotalCount()
	fmt.Fprintf(w, "pool: total=%d free=%d allocated=%d chunks=%d block_size=%d shards=%d debug=%t\n",
		total, free, total-free, len(p.chunks), p.blockSize, len(p.shards), p.audit != nil)
}

// Close tears the pool down: (1) asserts the audit set is empty in debug
// mode, (2) drops all shard caches, (3) releases all chunks.
func (p *Pool[T]) Close() error {
	if p.audit != nil {
		if n := p.audit.count(); n > 0 {
			return fmt.Errorf("%w: %d block(s) still live", ErrLeakDetected, n)
		}
	}
	p.shards = nil

	p.globalMu.Lock()
	defer p.globalMu.Unlock()
	for _, c := range p.chunks {
		c.release(p.alloc)
	}
	p.chunks = nil
	p.freeHead = nil
	p.freeCount = 0
	p.totalBlocks = 0
	return nil
}

// growLocked grows total capacity by one chunk. Caller holds globalMu.
func (p *Pool[T]) growLocked() error {
	if p.cfg.MaxChunks > 0 && len(p.chunks) >= p.cfg.MaxChunks {
		return ErrOutOfCapacity
	}
	c, err := p.growChunkWithRetry()
	if err != nil {
		return err
	}
	p.chunks = append(p.chunks, c)

	var head, tail unsafe.Pointer
	for i := 0; i < c.blockCount; i++ {
		b := c.blockAt(i)
		*freeLinkNext(b) = head
		head = b
		if tail == nil {
			tail = b
		}
	}
	if head != nil {
		freeListSplice(&p.freeHead, head, tail)
		p.freeCount += c.blockCount
		p.totalBlocks += c.blockCount
	}
	return nil
}

// growChunkWithRetry allocates one chunk, optionally retrying under
// memory pressure per Config.ReleaseUnderPressure.
func (p *Pool[T]) growChunkWithRetry() (*chunk, error) {
	c, err := newChunk(p.blockSize, p.cfg.ChunkBlockCount, p.alignment, p.alloc)
	if err == nil {
		return c, nil
	}
	if !p.cfg.ReleaseUnderPressure || len(p.chunks) == 0 {
		return nil, err
	}
	for attempt := 0; attempt < 3; attempt++ {
		if !p.releaseUnderPressureLocked() {
			break
		}
		c, err = newChunk(p.blockSize, p.cfg.ChunkBlockCount, p.alignment, p.alloc)
		if err == nil {
			return c, nil
		}
	}
	return nil, err
}

// releaseUnderPressureLocked releases up to a quarter of the chunk list,
// most-recently-allocated first, skipping any chunk whose blocks are not
// entirely accounted for on the global free-list (i.e. some block from it
// is cached in a shard or held by a caller — releasing it would corrupt
// that reference).
func (p *Pool[T]) releaseUnderPressureLocked() bool {
	quota := len(p.chunks) / 4
	if quota < 1 {
		quota = 1
	}
	released := 0
	for i := len(p.chunks) - 1; i >= 0 && released < quota; i-- {
		c := p.chunks[i]
		if !p.chunkIdleOnGlobal(c) {
			continue
		}
		p.removeChunkFromGlobalFree(c)
		c.release(p.alloc)
		p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
		p.totalBlocks -= c.blockCount
		released++
	}
	return released > 0
}

func (p *Pool[T]) chunkIdleOnGlobal(c *chunk) bool {
	count := 0
	for cur := p.freeHead; cur != nil; cur = *freeLinkNext(cur) {
		if c.contains(cur) {
			count++
		}
	}
	return count == c.blockCount
}

func (p *Pool[T]) removeChunkFromGlobalFree(c *chunk) {
	var newHead, tail unsafe.Pointer
	removed := 0
	cur := p.freeHead
	for cur != nil {
		next := *freeLinkNext(cur)
		if c.contains(cur) {
			removed++
		} else {
			*freeLinkNext(cur) = nil
			if newHead == nil {
				newHead = cur
			} else {
				*freeLinkNext(tail) = cur
			}
			tail = cur
		}
		cur = next
	}
	p.freeHead = newHead
	p.freeCount -= removed
}

// refill moves a batch of blocks from the global free-list onto s. If the
// global list is empty and cannot grow, it moves one free block from any
// shard onto s instead, and fails only when every shard is empty too.
// Caller does not hold s.mu or globalMu.
func (p *Pool[T]) refill(s *shard) error {
	p.globalMu.Lock()
	if p.freeHead == nil {
		if err := p.growLocked(); err != nil {
			p.globalMu.Unlock()
			for _, o := range p.shards {
				o.mu.Lock()
				runHead, runTail, took := freeListCut(&o.freeHead, 1)
				o.freeCount -= took
				o.mu.Unlock()
				if took > 0 {
					s.mu.Lock()
					freeListSplice(&s.freeHead, runHead, runTail)
					s.freeCount += took
					s.mu.Unlock()
					return nil
				}
			}
			return err
		}
	}
	batch := p.cfg.ChunkBlockCount / 4
	if batch > 32 {
		batch = 32
	}
	if batch < 1 {
		batch = 1
	}
	runHead, runTail, took := freeListCut(&p.freeHead, batch)
	p.freeCount -= took
	p.globalMu.Unlock()

	if took == 0 {
		return ErrOutOfCapacity
	}

	s.mu.Lock()
	if s.freeHead == nil {
		s.freeHead = runHead
	} else {
		freeListSplice(&s.freeHead, runHead, runTail)
	}
	s.freeCount += took
	s.mu.Unlock()
	return nil
}

// flush spills the rear half of an overfull shard back onto the global
// free-list, amortizing global contention. It takes s.mu and globalMu
// itself, one after the other; the caller holds neither.
func (p *Pool[T]) flush(s *shard) {
	s.mu.Lock()
	if s.freeCount <= p.cfg.ChunkBlockCount {
		s.mu.Unlock()
		return
	}
	keep := s.freeCount / 2
	rearHead, rearTail, moved := freeListSplitRear(&s.freeHead, keep)
	s.freeCount -= moved
	s.mu.Unlock()

	if moved == 0 {
		return
	}
	p.globalMu.Lock()
	freeListSplice(&p.freeHead, rearHead, rearTail)
	p.freeCount += moved
	p.globalMu.Unlock()
}

func (p *Pool[T]) allocateFrom(s *shard) (*T, error) {
	var blk unsafe.Pointer
	var ok bool

	if s == nil {
		p.globalMu.Lock()
		if p.freeHead == nil {
			if err := p.growLocked(); err != nil {
				p.globalMu.Unlock()
				return nil, err
			}
		}
		blk, ok = freeListPop(&p.freeHead)
		if ok {
			p.freeCount--
		}
		p.globalMu.Unlock()
	} else {
		s.mu.Lock()
		blk, ok = freeListPop(&s.freeHead)
		if ok {
			s.freeCount--
		}
		s.mu.Unlock()

		if !ok {
			if err := p.refill(s); err != nil {
				return nil, err
			}
			s.mu.Lock()
			blk, ok = freeListPop(&s.freeHead)
			if ok {
				s.freeCount--
			}
			s.mu.Unlock()
		}
	}

	if !ok {
		return nil, ErrOutOfCapacity
	}
	if p.audit != nil {
		p.audit.record(blk)
	}
	return (*T)(blk), nil
}

func (p *Pool[T]) deallocateFrom(s *shard, v *T) {
	if v == nil {
		return
	}
	blk := unsafe.Pointer(v)

	if p.audit != nil {
		if !p.audit.remove(blk) {
			panic(fmt.Errorf("%w: %p", ErrInvalidFree, blk))
		}
		poison(blk, p.blockSize)
	}

	if s == nil {
		p.globalMu.Lock()
		freeListPush(&p.freeHead, blk)
		p.freeCount++
		p.globalMu.Unlock()
		return
	}

	s.mu.Lock()
	freeListPush(&s.freeHead, blk)
	s.freeCount++
	s.mu.Unlock()

	p.flush(s)
}
