package cache

import (
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(size int, ttl time.Duration) (*LRUCache[string], *clock) {
	clk := &clock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](size, ttl)
	c.now = clk.now
	return c, clk
}

func TestLRUGetSet(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("expected 1, got %q ok=%v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("unexpected hit")
	}
}

func TestLRUEviction(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // a is now most recent
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should survive")
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	clk.t = clk.t.Add(30 * time.Second)
	c.Set("b", "2") // refresh b

	clk.t = clk.t.Add(45 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Fatal("a should have expired")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("b should still be live")
	}

	clk.t = clk.t.Add(time.Hour)
	if n := c.CleanExpired(); n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	if c.Size() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Size())
	}
}

func TestLRUUpdate(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)
	if _, ok := c.Update("a", func(s string) string { return s + "!" }); ok {
		t.Fatal("update of missing key must report false")
	}
	c.Set("a", "x")
	got, ok := c.Update("a", func(s string) string { return s + "!" })
	if !ok || got != "x!" {
		t.Fatalf("unexpected update result %q ok=%v", got, ok)
	}
	clk.t = clk.t.Add(2 * time.Minute)
	called := false
	if _, ok := c.Update("a", func(s string) string { called = true; return s }); ok || called {
		t.Fatal("expired entry must not be updated")
	}
}

func TestManagerCleanNow(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)
	c.Set("a", "1")
	m := NewManager(nil)
	m.Register(c)

	clk.t = clk.t.Add(2 * time.Minute)
	if n := m.CleanNow(); n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
}

func TestManagerStopIdempotent(t *testing.T) {
	m := NewManager(nil)
	m.Stop()
	m.Stop()

	started := NewManager(nil)
	started.StartCleanup(time.Millisecond)
	started.Stop()
	started.Stop()
}
