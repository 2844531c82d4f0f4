//go:build windows
// +build windows

// File: pool/chunk_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows chunk backing storage: VirtualAlloc/VirtualFree, mirroring the
// Linux mmap path.

package pool

import (
	"fmt"
	"unsafe"

	"github.com/momentics/hiocore/api"
	"golang.org/x/sys/windows"
)

type windowsPageAllocator struct{}

func (windowsPageAllocator) Alloc(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		detail := api.NewError(api.ErrCodeResourceExhausted, "VirtualAlloc failed").
			WithContext("bytes", size).WithContext("cause", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrOutOfMemory, detail)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (windowsPageAllocator) Free(raw []byte) {
	if len(raw) == 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(&raw[0]))
	_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

var defaultPageAllocator pageAllocator = windowsPageAllocator{}
