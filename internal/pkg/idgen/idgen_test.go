package idgen

import (
	"sync"
	"testing"
	"time"
)

func TestGenerator_UniqueUnderConcurrency(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	g := NewWithClock(func() time.Time { return fixed })

	const n = 200
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.NewID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, n)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != n {
		t.Fatalf("expected %d ids, got %d", n, len(seen))
	}
}

func TestTime_RoundTrip(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewWithClock(func() time.Time { return at }).NewID()

	if got := Time(id); !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}
	if !Time("superadmin").IsZero() {
		t.Fatalf("expected zero time for non-ULID id")
	}
}

func TestGenerator_SortsByCreation(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewWithClock(func() time.Time { return now })

	first := g.NewID()
	now = now.Add(time.Millisecond)
	second := g.NewID()

	if !(first < second) {
		t.Fatalf("expected %s < %s", first, second)
	}
}
