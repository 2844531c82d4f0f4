// File: pool/observability.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wires Pool[T]'s counters into the shared control-plane registries. None
// of this is on the allocate/deallocate hot path.

package pool

import "github.com/momentics/hiocore/control"

// RegisterProbes registers free/total/allocated counters under name.* in
// dp, so a caller with several pools can tell them apart in DumpState().
func (p *Pool[T]) RegisterProbes(dp *control.DebugProbes, name string) {
	dp.RegisterProbe(name+".free", func() any { return p.FreeCount() })
	dp.RegisterProbe(name+".total", func() any { return p.TotalCount() })
	dp.RegisterProbe(name+".allocated", func() any { return p.AllocatedCount() })
}

// Observe snapshots the pool's counters into mr under name.*.
func (p *Pool[T]) Observe(mr *control.MetricsRegistry, name string) {
	mr.Set(name+".free", p.FreeCount())
	mr.Set(name+".total", p.TotalCount())
	mr.Set(name+".allocated", p.AllocatedCount())
}

// SetReleaseUnderPressure toggles the memory-pressure chunk-release policy
// at runtime. Safe to call concurrently with Allocate/Deallocate.
func (p *Pool[T]) SetReleaseUnderPressure(on bool) {
	p.globalMu.Lock()
	p.cfg.ReleaseUnderPressure = on
	p.globalMu.Unlock()
}

// ReleaseUnderPressure reports the policy's current value.
func (p *Pool[T]) ReleaseUnderPressure() bool {
	p.globalMu.Lock()
	defer p.globalMu.Unlock()
	return p.cfg.ReleaseUnderPressure
}

// WatchConfig registers a listener on cs so that whenever key's boolean
// value changes, it is applied via SetReleaseUnderPressure. This is the
// only Config field safe to change after New: block size, alignment, and
// shard count are fixed at construction.
func (p *Pool[T]) WatchConfig(cs *control.ConfigStore, key string) {
	cs.OnReload(func() {
		if on, ok := cs.GetSnapshot()[key].(bool); ok {
			p.SetReleaseUnderPressure(on)
		}
	})
}
