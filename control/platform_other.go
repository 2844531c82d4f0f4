//go:build !linux && !windows
// +build !linux,!windows

// control/platform_other.go
// Author: momentics <momentics@gmail.com>
//
// Fallback platform probes for OSes without a dedicated implementation.

package control

import (
	"runtime"
)

// RegisterPlatformProbes sets the OS-independent debug probes available
// everywhere the Go runtime reports them.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}
