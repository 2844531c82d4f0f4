package pool_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/momentics/hiocore/api"
	"github.com/momentics/hiocore/pool"
)

type widget struct {
	A int64
	B int64
}

func TestBasicAllocateDeallocate(t *testing.T) {
	p, err := pool.New[widget](pool.Config{ChunkBlockCount: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	var items []*widget
	for i := 0; i < 10; i++ {
		v, err := p.Allocate()
		if err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
		items = append(items, v)
	}
	for _, v := range items {
		p.Deallocate(v)
	}
	if got := p.AllocatedCount(); got != 0 {
		t.Errorf("allocated = %d, want 0", got)
	}
	if got := p.TotalCount(); got != 10 {
		t.Errorf("total = %d, want 10", got)
	}
}

func TestCapacityCap(t *testing.T) {
	p, err := pool.New[widget](pool.Config{ChunkBlockCount: 5, MaxChunks: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	var held []*widget
	for i := 0; i < 5; i++ {
		v, err := p.Allocate()
		if err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
		held = append(held, v)
	}

	if _, err := p.Allocate(); !errors.Is(err, pool.ErrOutOfCapacity) {
		t.Fatalf("expected 6th allocate to fail with ErrOutOfCapacity, got %v", err)
	}
	if _, err := p.Allocate(); !errors.Is(err, api.ErrResourceExhausted) {
		t.Fatalf("ErrOutOfCapacity should satisfy errors.Is(err, api.ErrResourceExhausted), got %v", err)
	}

	p.Deallocate(held[0])

	if _, err := p.Allocate(); err != nil {
		t.Fatalf("allocate after deallocate: %v", err)
	}
}

func TestNewRejectsNegativeMaxChunks(t *testing.T) {
	_, err := pool.New[widget](pool.Config{ChunkBlockCount: 4, MaxChunks: -1})
	if !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("expected errors.Is(err, api.ErrInvalidArgument), got %v", err)
	}
}

func TestMultithreadStress(t *testing.T) {
	const (
		threads         = 4
		opsPerThread    = 10000
		chunkBlockCount = 64
	)
	p, err := pool.New[widget](pool.Config{ChunkBlockCount: chunkBlockCount})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerThread; j++ {
				v, err := p.Construct(func(w *widget) error {
					w.A, w.B = 1, 2
					return nil
				})
				if err != nil {
					t.Errorf("construct: %v", err)
					return
				}
				p.Destroy(v, nil)
			}
		}()
	}
	wg.Wait()

	if got := p.AllocatedCount(); got != 0 {
		t.Errorf("allocated = %d, want 0", got)
	}
	minTotal := threads * opsPerThread / chunkBlockCount
	if got := p.TotalCount(); got < minTotal {
		t.Errorf("total = %d, want >= %d", got, minTotal)
	}
}

func TestValidatePointer(t *testing.T) {
	p, err := pool.New[widget](pool.Config{ChunkBlockCount: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	v, err := p.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	if !p.ValidatePointer(v) {
		t.Error("expected issued pointer to validate")
	}
	p.Deallocate(v)
}

func TestReserve(t *testing.T) {
	p, err := pool.New[widget](pool.Config{ChunkBlockCount: 8})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if err := p.Reserve(3); err != nil {
		t.Fatal(err)
	}
	if got := p.TotalCount(); got != 24 {
		t.Errorf("total = %d, want 24", got)
	}
}
