package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](0)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache returned ok")
	}
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	if v, ok := c.Get("a"); !ok || v != 3 {
		t.Errorf("Get(a) = %d, %v; want 3, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](4)
	var evicted []int
	c.OnEvict(func(k, _ int) { evicted = append(evicted, k) })

	for i := range 4 {
		c.Set(i, i)
	}
	// Touch 0 so that 1 becomes the oldest.
	c.Get(0)
	c.Set(4, 4)

	// Limit 4 exceeded: trimmed to 3 entries, dropping 1 and 2.
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	for _, k := range []int{0, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d evicted, want kept", k)
		}
	}
	if len(evicted) != 2 || evicted[0] != 1 || evicted[1] != 2 {
		t.Errorf("evicted = %v, want [1 2]", evicted)
	}
	if s := c.Stats(); s.Evictions != 2 {
		t.Errorf("Stats().Evictions = %d, want 2", s.Evictions)
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	create := func() (int, error) {
		calls++
		return 7, nil
	}

	for range 3 {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 7 {
			t.Fatalf("GetOrCreate = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	errBoom := errors.New("boom")
	if _, err := c.GetOrCreate("bad", func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
		t.Errorf("GetOrCreate error = %v, want %v", err, errBoom)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed create was stored")
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 3 {
		t.Errorf("Stats() hits=%d misses=%d, want 2 and 3", s.Hits, s.Misses)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[string, int](0)
	closed := map[string]bool{}
	c.OnEvict(func(k string, _ int) { closed[k] = true })

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if !c.Delete("b") {
		t.Error("Delete(b) = false")
	}
	if c.Delete("b") {
		t.Error("second Delete(b) = true")
	}
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	for _, k := range []string{"a", "b", "c"} {
		if !closed[k] {
			t.Errorf("OnEvict not called for %q", k)
		}
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				k := (g*31 + i) % 100
				_, _ = c.GetOrCreate(k, func() (int, error) { return k, nil })
				if v, ok := c.Get(k); ok && v != k {
					t.Errorf("Get(%d) = %d", k, v)
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds limit", c.Len())
	}
}
