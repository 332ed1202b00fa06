package cache

import "testing"

func TestNullCache(t *testing.T) {
	c := NewNullCache()

	// Get always returns miss
	v, hit := c.Get(Key{1, 2})
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if v != 0 {
		t.Errorf("NullCache.Get should return zero value, got %d", v)
	}

	// Set does nothing
	c.Set(Key{1, 2}, 255)
	if _, hit = c.Get(Key{1, 2}); hit {
		t.Error("NullCache should not store data")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
	if got := c.Stats().Misses; got != 2 {
		t.Errorf("Misses = %d, want 2", got)
	}
}

func TestMapCache(t *testing.T) {
	c := NewMapCache()

	if _, hit := c.Get(Key{0, 0}); hit {
		t.Fatal("empty cache should miss")
	}

	c.Set(Key{0, 0}, -255)
	v, hit := c.Get(Key{0, 0})
	if !hit || v != -255 {
		t.Errorf("Get = (%d, %v), want (-255, true)", v, hit)
	}

	// Zero deltas are real entries, not misses
	c.Set(Key{3, 4}, 0)
	if _, hit := c.Get(Key{3, 4}); !hit {
		t.Error("stored zero delta should hit")
	}

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats = %+v, want 2 hits 1 miss", s)
	}
}

func TestResolve(t *testing.T) {
	c := NewMapCache()
	calls := 0
	fn := func() int {
		calls++
		return 42
	}

	for i := 0; i < 3; i++ {
		if got := Resolve(c, Key{5, 5}, fn); got != 42 {
			t.Fatalf("Resolve = %d, want 42", got)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	calls = 0
	n := NewNullCache()
	for i := 0; i < 3; i++ {
		Resolve(n, Key{5, 5}, fn)
	}
	if calls != 3 {
		t.Errorf("NullCache should recompute every time, fn called %d times", calls)
	}
}
