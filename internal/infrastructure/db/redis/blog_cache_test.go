package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*BlogCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewBlogCache(client, ttl), srv
}

func TestBlogCache_MissSetHit(t *testing.T) {
	ctx := context.Background()
	cache, srv := newTestCache(t, time.Minute)

	entry, err := cache.Get(ctx, "all")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Hit || entry.Generation != 0 {
		t.Fatalf("expected miss in generation 0, got %+v", entry)
	}

	if err := cache.Set(ctx, "all", entry.Generation, []byte(`[{"id":"b1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !srv.Exists("blogs:v0:all") {
		t.Fatalf("expected key blogs:v0:all, have %v", srv.Keys())
	}
	if ttl := srv.TTL("blogs:v0:all"); ttl != time.Minute {
		t.Fatalf("expected 1m TTL, got %v", ttl)
	}

	entry, err = cache.Get(ctx, "all")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !entry.Hit || string(entry.Value) != `[{"id":"b1"}]` {
		t.Fatalf("expected hit, got %+v", entry)
	}
}

func TestBlogCache_InvalidateMakesEntriesUnreachable(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	if err := cache.Set(ctx, "game:valorant", 0, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	entry, err := cache.Get(ctx, "game:valorant")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Hit || entry.Generation != 1 {
		t.Fatalf("expected miss in generation 1, got %+v", entry)
	}
}

func TestBlogCache_FillFromBeforeInvalidateIsNeverServed(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	// Reader misses and starts loading.
	miss, err := cache.Get(ctx, "all")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// Writer commits and invalidates before the reader fills.
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := cache.Set(ctx, "all", miss.Generation, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	entry, err := cache.Get(ctx, "all")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Hit {
		t.Fatalf("read after the write served the pre-write listing %q", entry.Value)
	}
}

func TestBlogCache_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	cache, srv := newTestCache(t, 0)

	if err := cache.Set(ctx, "all", 0, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := srv.TTL("blogs:v0:all"); ttl != defaultCacheTTL {
		t.Fatalf("expected default TTL %v, got %v", defaultCacheTTL, ttl)
	}

	srv.FastForward(defaultCacheTTL + time.Second)

	entry, err := cache.Get(ctx, "all")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Hit {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestBlogCache_ServerErrors(t *testing.T) {
	ctx := context.Background()
	cache, srv := newTestCache(t, time.Minute)
	srv.Close()

	if _, err := cache.Get(ctx, "all"); err == nil {
		t.Fatalf("expected get error with server down")
	}
	if err := cache.Invalidate(ctx); err == nil {
		t.Fatalf("expected invalidate error with server down")
	}
}
