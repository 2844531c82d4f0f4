// File: framing/observability.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package framing

import "github.com/momentics/hiocore/control"

// RegisterProbes registers buffered/capacity probes under name.* in dp.
func RegisterProbes(f Framer, dp *control.DebugProbes, name string) {
	dp.RegisterProbe(name+".buffered_bytes", func() any { return f.Stats().BufferedBytes })
	dp.RegisterProbe(name+".capacity", func() any { return f.Stats().Capacity })
}

// Observe snapshots a framer's stats into mr under name.*.
func Observe(f Framer, mr *control.MetricsRegistry, name string) {
	stats := f.Stats()
	mr.Set(name+".buffered_bytes", stats.BufferedBytes)
	mr.Set(name+".capacity", stats.Capacity)
}
