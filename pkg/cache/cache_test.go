package cache

import (
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := New[string]()
	c.Set("signalements", "all", 1*time.Second)
	val, ok := c.Get("signalements")
	if !ok || val != "all" {
		t.Fatalf("expected all, got %v, exists=%v", val, ok)
	}
}

func TestExpiration(t *testing.T) {
	c := New[int]()
	c.Set("users", 3, 50*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Get("users"); ok {
		t.Fatalf("expected expired key to return false")
	}
}

func TestDelete(t *testing.T) {
	c := New[string]()
	c.Set("users", "all", 1*time.Second)
	c.Delete("users")
	if _, ok := c.Get("users"); ok {
		t.Fatalf("expected deleted key to return false")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := New[string]()
	c.Set("signalements:list", "l", 1*time.Second)
	c.Set("signalements:abc123", "s", 1*time.Second)
	c.Set("users:list", "u", 1*time.Second)
	c.Invalidate("signalements:")
	if _, ok := c.Get("signalements:list"); ok {
		t.Fatalf("expected signalement keys to be invalidated")
	}
	if _, ok := c.Get("signalements:abc123"); ok {
		t.Fatalf("expected signalement keys to be invalidated")
	}
	if _, ok := c.Get("users:list"); !ok {
		t.Fatalf("expected users:list to still exist")
	}
}

func TestZeroValueMiss(t *testing.T) {
	c := New[[]string]()
	val, ok := c.Get("missing")
	if ok || val != nil {
		t.Fatalf("expected nil slice on miss, got %v", val)
	}
}
