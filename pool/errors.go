// File: pool/errors.go
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy for the slab allocator.

package pool

import (
	"errors"
	"fmt"

	"github.com/momentics/hiocore/api"
)

var (
	// ErrOutOfCapacity is returned when MaxChunks is set and exhausted,
	// and no shard or the global free-list has a spare block. It also
	// satisfies errors.Is(err, api.ErrResourceExhausted) for callers that
	// only care about the cross-package condition, not which component
	// hit it.
	ErrOutOfCapacity = fmt.Errorf("pool: out of capacity: %w", api.ErrResourceExhausted)

	// ErrOutOfMemory is returned when the underlying page allocator
	// refuses a chunk and the retry budget (if any) is exhausted.
	ErrOutOfMemory = errors.New("pool: out of memory")

	// ErrInvalidFree is wrapped in the value Deallocate panics with in
	// debug mode when given a pointer not currently issued by this pool.
	ErrInvalidFree = errors.New("pool: invalid free")

	// ErrLeakDetected is raised by Close in debug mode when the audit
	// set is non-empty at teardown.
	ErrLeakDetected = errors.New("pool: leak detected")
)
