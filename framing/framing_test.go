package framing_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/momentics/hiocore/framing"
)

func collector() (func([]byte), func(error), func() []string) {
	var got []string
	var errs []error
	onJSON := func(b []byte) { got = append(got, string(b)) }
	onError := func(e error) { errs = append(errs, e) }
	return onJSON, onError, func() []string { return got }
}

func TestIncrementalSimple(t *testing.T) {
	onJSON, onError, collected := collector()
	f := framing.NewIncremental(onJSON, onError)
	f.Push([]byte(`{"name":"test"}`))

	got := collected()
	if len(got) != 1 || got[0] != `{"name":"test"}` {
		t.Fatalf("got %v", got)
	}
}

func TestIncrementalMultiple(t *testing.T) {
	onJSON, onError, collected := collector()
	f := framing.NewIncremental(onJSON, onError)
	f.Push([]byte(`{"id":1}{"id":2}`))

	want := []string{`{"id":1}`, `{"id":2}`}
	got := collected()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestIncrementalSplitAcrossPushes(t *testing.T) {
	onJSON, onError, collected := collector()
	f := framing.NewIncremental(onJSON, onError)
	f.Push([]byte(`{"name":"te`))
	if got := collected(); len(got) != 0 {
		t.Fatalf("unexpected emission before value completed: %v", got)
	}
	f.Push([]byte(`st"}`))

	got := collected()
	if len(got) != 1 || got[0] != `{"name":"test"}` {
		t.Fatalf("got %v", got)
	}
}

func TestIncrementalPreservesInteriorWhitespace(t *testing.T) {
	onJSON, onError, collected := collector()
	f := framing.NewIncremental(onJSON, onError)
	f.Push([]byte(`{"id": 1}`))

	got := collected()
	if len(got) != 1 || got[0] != `{"id": 1}` {
		t.Fatalf("got %v, want interior whitespace preserved", got)
	}
}

func TestIncrementalAcceptsTopLevelArray(t *testing.T) {
	onJSON, onError, collected := collector()
	f := framing.NewIncremental(onJSON, onError)
	f.Push([]byte(`[1,2,3]{"id":1}`))

	got := collected()
	if len(got) != 2 || got[0] != `[1,2,3]` || got[1] != `{"id":1}` {
		t.Fatalf("got %v", got)
	}
}

func TestIncrementalClear(t *testing.T) {
	onJSON, onError, collected := collector()
	f := framing.NewIncremental(onJSON, onError)
	f.Push([]byte(`{"name":"te`))
	f.Clear()
	f.Push([]byte(`{"id":1}`))

	got := collected()
	if len(got) != 1 || got[0] != `{"id":1}` {
		t.Fatalf("got %v", got)
	}
}

func TestRingBufferWhitespaceBetweenValues(t *testing.T) {
	onJSON, onError, collected := collector()
	f := framing.NewRingBuffer(onJSON, onError, 0)
	f.Push([]byte("  {\"id\":1}  \n  {\"id\":2}  "))

	want := []string{`{"id":1}`, `{"id":2}`}
	got := collected()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRingBufferGrowsForLargeArray(t *testing.T) {
	var elems []string
	for i := 0; i < 100000; i++ {
		elems = append(elems, strconv.Itoa(i))
	}
	input := "[" + strings.Join(elems, ",") + "]"

	onJSON, onError, collected := collector()
	f := framing.NewRingBuffer(onJSON, onError, 64)

	const chunk = 4096
	for i := 0; i < len(input); i += chunk {
		end := i + chunk
		if end > len(input) {
			end = len(input)
		}
		f.Push([]byte(input[i:end]))
	}

	got := collected()
	if len(got) != 1 {
		t.Fatalf("got %d emissions, want 1", len(got))
	}
	if got[0] != input {
		t.Fatalf("emitted value mismatch: lengths got=%d want=%d", len(got[0]), len(input))
	}
	if f.Stats().Capacity <= 64 {
		t.Errorf("capacity = %d, want growth beyond initial 64", f.Stats().Capacity)
	}
}

func TestRingBufferSplitAcrossPushes(t *testing.T) {
	onJSON, onError, collected := collector()
	f := framing.NewRingBuffer(onJSON, onError, 256)
	f.Push([]byte(`{"name":"te`))
	f.Push([]byte(`st"}`))

	got := collected()
	if len(got) != 1 || got[0] != `{"name":"test"}` {
		t.Fatalf("got %v", got)
	}
}

func TestCreateFactory(t *testing.T) {
	onJSON, onError, _ := collector()

	if _, err := framing.Create(framing.KindIncremental, onJSON, onError, 0); err != nil {
		t.Fatalf("Incremental: %v", err)
	}
	if _, err := framing.Create(framing.KindRingBuffer, onJSON, onError, 4096); err != nil {
		t.Fatalf("RingBuffer: %v", err)
	}
	if _, err := framing.Create(framing.Kind(99), onJSON, onError, 0); err == nil {
		t.Fatal("expected ErrInvalidParserKind for unknown kind")
	}
}
