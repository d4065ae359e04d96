package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &Cache{client: client}
}

func TestCheckUserRateLimit_AllowsWithinBurst(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := c.CheckUserRateLimit(ctx, "user-1", 60, 5)
		if err != nil {
			t.Fatalf("CheckUserRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
}

func TestCheckUserRateLimit_BlocksOverBurst(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	// Exhaust the bucket
	for i := 0; i < 3; i++ {
		if _, err := c.CheckUserRateLimit(ctx, "user-2", 60, 3); err != nil {
			t.Fatalf("CheckUserRateLimit failed: %v", err)
		}
	}

	result, err := c.CheckUserRateLimit(ctx, "user-2", 60, 3)
	if err != nil {
		t.Fatalf("CheckUserRateLimit failed: %v", err)
	}
	if result.Allowed {
		t.Error("request over burst should be blocked")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter, got %v", result.RetryAfter)
	}
}

func TestCheckUserRateLimit_UnlimitedTier(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		result, err := c.CheckUserRateLimit(ctx, "user-3", 0, 10)
		if err != nil {
			t.Fatalf("CheckUserRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatal("zero rate means unlimited, request should be allowed")
		}
	}
}

func TestCheckIPRateLimit_IsolatesClients(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	// Exhaust one IP's bucket
	for i := 0; i < 2; i++ {
		if _, err := c.CheckIPRateLimit(ctx, "10.0.0.1", 1, 2); err != nil {
			t.Fatalf("CheckIPRateLimit failed: %v", err)
		}
	}

	blocked, err := c.CheckIPRateLimit(ctx, "10.0.0.1", 1, 2)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if blocked.Allowed {
		t.Error("exhausted IP should be blocked")
	}

	// A different IP has its own bucket
	other, err := c.CheckIPRateLimit(ctx, "10.0.0.2", 1, 2)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if !other.Allowed {
		t.Error("different IP should not share the bucket")
	}
}

func TestCheckRateLimit_FailsOpenOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := &Cache{client: client}

	// Simulate Redis being unreachable
	mr.Close()
	_ = client.Close()

	result, err := c.CheckUserRateLimit(context.Background(), "user-4", 60, 5)
	if err != nil {
		t.Fatalf("rate limiter must fail open, got error: %v", err)
	}
	if !result.Allowed {
		t.Error("rate limiter must allow requests when Redis is down")
	}
}
