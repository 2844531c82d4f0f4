package queue_test

import (
	"testing"

	"github.com/momentics/hiocore/control"
	"github.com/momentics/hiocore/queue"
)

func TestObservability(t *testing.T) {
	q := queue.New[int](queue.Config{Capacity: 10})
	q.Write(1, 0)
	q.Write(2, 0)

	dp := control.NewDebugProbes()
	q.RegisterProbes(dp, "orders")
	if got := dp.DumpState()["orders.size"]; got != 2 {
		t.Errorf("orders.size probe = %v, want 2", got)
	}

	mr := control.NewMetricsRegistry()
	q.Observe(mr, "orders")
	if got := mr.GetSnapshot()["orders.size"]; got != 2 {
		t.Errorf("orders.size metric = %v, want 2", got)
	}
}
