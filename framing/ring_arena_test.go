package framing_test

import (
	"testing"

	"github.com/momentics/hiocore/framing"
	"github.com/momentics/hiocore/pool"
)

func TestRingBufferWithArenaGrows(t *testing.T) {
	arena := pool.NewBytePool()
	onJSON, onError, collected := collector()
	f := framing.NewRingBufferWithArena(onJSON, onError, 256, arena)

	f.Push([]byte(`{"name":"test"}`))
	got := collected()
	if len(got) != 1 || got[0] != `{"name":"test"}` {
		t.Fatalf("got %v", got)
	}

	big := make([]byte, 0, 4096)
	big = append(big, '[')
	for i := 0; i < 1000; i++ {
		if i > 0 {
			big = append(big, ',')
		}
		big = append(big, '1')
	}
	big = append(big, ']')
	f.Push(big)

	got = collected()
	if len(got) != 2 || got[1] != string(big) {
		t.Fatalf("large array emission mismatch")
	}
	if f.Stats().Capacity <= 256 {
		t.Errorf("capacity = %d, want growth beyond initial 256", f.Stats().Capacity)
	}
}
