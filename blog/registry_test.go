package blog

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestRegistry(ttl time.Duration, max int) (*Registry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(ttl, max)
	r.now = clock.now
	return r, clock
}

func TestRegistryOpenAndGet(t *testing.T) {
	r, _ := newTestRegistry(time.Minute, 10)
	token, list := r.Open(samplePosts())
	if token == "" {
		t.Fatal("Open returned empty token")
	}
	got, ok := r.Get(token)
	if !ok {
		t.Fatal("Get should find the opened page")
	}
	if got != list {
		t.Error("Get returned a different list")
	}
	if _, ok := r.Get("unknown"); ok {
		t.Error("Get(unknown) should miss")
	}
	if _, ok := r.Get(""); ok {
		t.Error("Get(\"\") should miss")
	}
}

func TestRegistryPagesAreIndependent(t *testing.T) {
	r, _ := newTestRegistry(time.Minute, 10)
	a, listA := r.Open(samplePosts())
	b, listB := r.Open(samplePosts())
	if a == b {
		t.Fatal("tokens should be unique")
	}
	listA.Remove(1)
	if listB.Len() != 4 {
		t.Errorf("mutating one page changed another: len = %d", listB.Len())
	}
}

func TestRegistryExpiry(t *testing.T) {
	r, clock := newTestRegistry(time.Minute, 10)
	token, _ := r.Open(nil)

	clock.t = clock.t.Add(30 * time.Second)
	if _, ok := r.Get(token); !ok {
		t.Fatal("page should still be live")
	}
	// Get refreshed the page, so another 59s keeps it alive.
	clock.t = clock.t.Add(59 * time.Second)
	if _, ok := r.Get(token); !ok {
		t.Fatal("touched page should still be live")
	}
	clock.t = clock.t.Add(2 * time.Minute)
	if _, ok := r.Get(token); ok {
		t.Error("expired page should not be returned")
	}
	if r.Len() != 0 {
		t.Errorf("expired page should be dropped, len = %d", r.Len())
	}
}

func TestRegistrySweep(t *testing.T) {
	r, clock := newTestRegistry(time.Minute, 10)
	r.Open(nil)
	r.Open(nil)
	clock.t = clock.t.Add(2 * time.Minute)
	live, _ := r.Open(nil)
	if n := r.Sweep(); n != 2 {
		t.Errorf("Sweep removed %d, want 2", n)
	}
	if _, ok := r.Get(live); !ok {
		t.Error("fresh page should survive the sweep")
	}
}

func TestRegistryEvictsOldest(t *testing.T) {
	r, clock := newTestRegistry(time.Hour, 2)
	first, _ := r.Open(nil)
	clock.t = clock.t.Add(time.Second)
	second, _ := r.Open(nil)
	clock.t = clock.t.Add(time.Second)
	third, _ := r.Open(nil)

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	if _, ok := r.Get(first); ok {
		t.Error("oldest page should have been evicted")
	}
	for _, tok := range []string{second, third} {
		if _, ok := r.Get(tok); !ok {
			t.Errorf("page %s should be live", tok)
		}
	}
}

func TestRegistryClose(t *testing.T) {
	r, _ := newTestRegistry(time.Minute, 0)
	token, _ := r.Open(nil)
	r.Close(token)
	if _, ok := r.Get(token); ok {
		t.Error("closed page should be gone")
	}
}

func TestRegistrySweeperStops(t *testing.T) {
	r := NewRegistry(time.Millisecond, 0)
	r.Open(nil)
	stop := r.StartSweeper(5 * time.Millisecond)
	defer stop()
	deadline := time.Now().Add(2 * time.Second)
	for r.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if r.Len() != 0 {
		t.Error("sweeper did not drop the expired page")
	}
	stop()
}
