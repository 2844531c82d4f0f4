package control_test

import (
	"testing"
	"time"

	"github.com/momentics/hiocore/control"
)

func TestConfigStoreDispatchesToGlobalHotReload(t *testing.T) {
	fired := make(chan struct{}, 1)
	control.RegisterReloadHook(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	cs := control.NewConfigStore()
	cs.SetConfig(map[string]any{"k": "v"})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("expected the global hot-reload hook to have fired")
	}
}

func TestTriggerHotReloadSyncRunsHooksBeforeReturning(t *testing.T) {
	var n int
	control.RegisterReloadHook(func() { n++ })
	control.RegisterReloadHook(func() { n++ })

	before := n
	control.TriggerHotReloadSync()
	if n <= before {
		t.Fatal("expected TriggerHotReloadSync to have run registered hooks synchronously")
	}
}

func TestConfigStoreListenerReceivesSnapshot(t *testing.T) {
	cs := control.NewConfigStore()
	done := make(chan string, 1)
	cs.OnReload(func() {
		if v, ok := cs.GetSnapshot()["queue.name"].(string); ok {
			done <- v
		}
	})

	cs.SetConfig(map[string]any{"queue.name": "orders"})

	select {
	case got := <-done:
		if got != "orders" {
			t.Errorf("got %q, want orders", got)
		}
	case <-time.After(time.Second):
		t.Fatal("listener was never invoked")
	}
}
