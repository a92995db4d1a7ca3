package cache

import (
	"context"
	"testing"
	"time"
)

type payload struct {
	Score int    `json:"score"`
	Band  string `json:"band"`
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if err := c.Set(ctx, "k", payload{Score: 70, Band: "乐观"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Score != 70 || got.Band != "乐观" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestMemory_Miss(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	var got payload
	if err := c.Get(ctx, "absent", &got); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if err := c.Set(ctx, "k", payload{Score: 1}, time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var got payload
	if err := c.Get(ctx, "k", &got); err != ErrCacheMiss {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_ = c.Set(ctx, "k", payload{Score: 1}, time.Minute)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var got payload
	if err := c.Get(ctx, "k", &got); err != ErrCacheMiss {
		t.Errorf("expected miss after delete, got %v", err)
	}
}
