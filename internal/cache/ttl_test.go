package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestTTLHitWithinWindow(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New[[]int](30*time.Second, clk.now)

	if _, ok := c.Get(); ok {
		t.Fatal("empty cache reported a hit")
	}

	c.Set([]int{1, 2})
	clk.advance(29 * time.Second)

	got, ok := c.Get()
	if !ok {
		t.Fatal("expected hit inside the window")
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}
	if c.Age() != 29*time.Second {
		t.Fatalf("Age = %s, want 29s", c.Age())
	}
}

func TestTTLExpires(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New[string](30*time.Second, clk.now)

	c.Set("old")
	clk.advance(30 * time.Second)

	if _, ok := c.Get(); ok {
		t.Fatal("expected miss at the window boundary")
	}
	if v, ok := c.Peek(); !ok || v != "old" {
		t.Fatalf("Peek = %q, %v; want last value kept", v, ok)
	}

	c.Set("new")
	if v, ok := c.Get(); !ok || v != "new" {
		t.Fatalf("Get after Set = %q, %v", v, ok)
	}
}

func TestTTLInvalidate(t *testing.T) {
	c := New[int](time.Minute, nil)
	c.Set(7)
	c.Invalidate()

	if c.Fresh() {
		t.Fatal("invalidated cache still fresh")
	}
	if _, ok := c.Peek(); ok {
		t.Fatal("Peek after Invalidate should report empty")
	}
	if c.Age() != 0 {
		t.Fatalf("Age = %s, want 0", c.Age())
	}
}

func TestTTLDefaultWindow(t *testing.T) {
	c := New[int](0, nil)
	if c.Window() != DefaultTTL {
		t.Fatalf("Window = %s, want %s", c.Window(), DefaultTTL)
	}
}
