// File: queue/observability.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package queue

import "github.com/momentics/hiocore/control"

// RegisterProbes registers a size probe under name.size in dp.
func (q *Queue[T]) RegisterProbes(dp *control.DebugProbes, name string) {
	dp.RegisterProbe(name+".size", func() any { return q.Size() })
}

// Observe snapshots the queue's size into mr under name.size.
func (q *Queue[T]) Observe(mr *control.MetricsRegistry, name string) {
	mr.Set(name+".size", q.Size())
}

// WatchConfig registers a listener on cs so that whenever key's string
// value changes, the queue's label is updated via SetName. Capacity is
// not reloadable: it is fixed at New.
func (q *Queue[T]) WatchConfig(cs *control.ConfigStore, key string) {
	cs.OnReload(func() {
		if name, ok := cs.GetSnapshot()[key].(string); ok {
			q.SetName(name)
		}
	})
}
