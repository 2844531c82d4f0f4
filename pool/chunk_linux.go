//go:build linux
// +build linux

// File: pool/chunk_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux chunk backing storage: anonymous mmap. A failed mapping propagates
// as ErrOutOfMemory; SAC's growth retry policy (pool.go) decides whether to
// release pressure and try again.

package pool

import (
	"fmt"

	"github.com/momentics/hiocore/api"
	"golang.org/x/sys/unix"
)

type unixPageAllocator struct{}

func (unixPageAllocator) Alloc(size int) ([]byte, error) {
	raw, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		detail := api.NewError(api.ErrCodeResourceExhausted, "mmap failed").
			WithContext("bytes", size).WithContext("cause", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrOutOfMemory, detail)
	}
	return raw, nil
}

func (unixPageAllocator) Free(raw []byte) {
	_ = unix.Munmap(raw)
}

var defaultPageAllocator pageAllocator = unixPageAllocator{}
