package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get(KindPosts, "list"); ok {
		t.Error("expected miss on empty cache")
	}

	c.Set(KindPosts, "list", []string{"post-a"})
	v, ok := c.Get(KindPosts, "list")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got := v.([]string); len(got) != 1 || got[0] != "post-a" {
		t.Errorf("unexpected cached value: %v", got)
	}
}

func TestExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.Set(KindCabinets, "list", 42)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get(KindCabinets, "list"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestInvalidateKind(t *testing.T) {
	c := New(time.Minute)

	c.Set(KindPosts, "list", 1)
	c.Set(KindPosts, "post-a", 2)
	c.Set(KindContacts, "list", 3)

	c.Invalidate(KindPosts)

	if _, ok := c.Get(KindPosts, "list"); ok {
		t.Error("expected posts list to be invalidated")
	}
	if _, ok := c.Get(KindPosts, "post-a"); ok {
		t.Error("expected posts entry to be invalidated")
	}
	if _, ok := c.Get(KindContacts, "list"); !ok {
		t.Error("expected contacts to survive posts invalidation")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache

	c.Set(KindPosts, "list", 1)
	if _, ok := c.Get(KindPosts, "list"); ok {
		t.Error("nil cache should never hit")
	}
	c.Invalidate(KindPosts)
}
