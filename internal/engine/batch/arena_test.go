package batch

import (
	"sort"
	"sync"
	"testing"
)

func TestArenaReserve(t *testing.T) {
	a := NewArena(12)

	off, ok := a.Reserve(6)
	if !ok || off != 0 {
		t.Fatalf("Reserve(6) = (%d, %v), want (0, true)", off, ok)
	}
	off, ok = a.Reserve(6)
	if !ok || off != 6 {
		t.Fatalf("Reserve(6) = (%d, %v), want (6, true)", off, ok)
	}
	if _, ok := a.Reserve(1); ok {
		t.Fatal("Reserve(1) on full arena should fail")
	}
	if a.Len() != 12 {
		t.Errorf("Len() = %d, want 12", a.Len())
	}

	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", a.Len())
	}
}

func TestArenaReserveNegative(t *testing.T) {
	a := NewArena(12)
	if _, ok := a.Reserve(-6); ok {
		t.Error("Reserve(-6) should fail")
	}
	if a.Len() != 0 {
		t.Errorf("Len() = %d, want 0", a.Len())
	}
}

func TestArenaSliceOutOfRange(t *testing.T) {
	a := NewArena(12)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range slice")
		}
	}()
	a.Slice(6, 12)
}

func TestArenaConcurrentReserve(t *testing.T) {
	const (
		workers = 8
		perWork = 50
		size    = 6
	)
	a := NewArena(workers * perWork * size)

	var (
		mu      sync.Mutex
		offsets []int
		wg      sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWork; i++ {
				off, ok := a.Reserve(size)
				if !ok {
					t.Error("Reserve failed before arena was full")
					return
				}
				mu.Lock()
				offsets = append(offsets, off)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Ints(offsets)
	for i, off := range offsets {
		if off != i*size {
			t.Fatalf("offset %d = %d, want %d (ranges overlap or leave gaps)", i, off, i*size)
		}
	}
	if _, ok := a.Reserve(size); ok {
		t.Error("Reserve on full arena should fail")
	}
}
