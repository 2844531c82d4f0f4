package pool_test

import (
	"errors"
	"testing"

	"github.com/momentics/hiocore/pool"
)

func TestLeakDetectedOnClose(t *testing.T) {
	p, err := pool.New[widget](pool.Config{ChunkBlockCount: 4, Debug: true})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.Allocate(); err != nil {
		t.Fatal(err)
	}

	if err := p.Close(); !errors.Is(err, pool.ErrLeakDetected) {
		t.Errorf("Close err = %v, want ErrLeakDetected", err)
	}
}

func TestInvalidFreePanics(t *testing.T) {
	p, err := pool.New[widget](pool.Config{ChunkBlockCount: 4, Debug: true})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	v, err := p.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	p.Deallocate(v)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on double free")
		}
	}()
	p.Deallocate(v)
}
