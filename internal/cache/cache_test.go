package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type video struct {
	ID    string
	Title string
}

func TestMemoryCache_GetSet(t *testing.T) {
	cache := NewMemoryCache[video](0)
	ctx := context.Background()

	err := cache.Set(ctx, "v1", video{ID: "v1", Title: "Intro"}, time.Minute)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := cache.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if value.Title != "Intro" {
		t.Errorf("Expected title Intro, got %q", value.Title)
	}
}

func TestMemoryCache_GetMiss(t *testing.T) {
	cache := NewMemoryCache[video](0)

	_, err := cache.Get(context.Background(), "non-existent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache[video](0)
	ctx := context.Background()

	if err := cache.Set(ctx, "expire-key", video{ID: "x"}, 50*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := cache.Get(ctx, "expire-key"); err != nil {
		t.Fatalf("Get failed before expiration: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if _, err := cache.Get(ctx, "expire-key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after expiration, got %v", err)
	}
}

func TestMemoryCache_SweepEvictsExpired(t *testing.T) {
	cache := NewMemoryCache[video](10 * time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	_ = cache.Set(ctx, "short", video{ID: "short"}, time.Millisecond)
	_ = cache.Set(ctx, "long", video{ID: "long"}, time.Minute)

	deadline := time.Now().Add(time.Second)
	for cache.Len() > 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if cache.Len() != 1 {
		t.Errorf("Expected sweep to leave 1 entry, got %d", cache.Len())
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache[video](0)
	ctx := context.Background()

	_ = cache.Set(ctx, "v1", video{ID: "v1"}, time.Minute)
	if err := cache.Delete(ctx, "v1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "v1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache[video](time.Minute)
	_ = cache.Set(context.Background(), "v1", video{ID: "v1"}, time.Minute)

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after Close, got %d entries", cache.Len())
	}
}

func TestMemoryCache_Health(t *testing.T) {
	if err := NewMemoryCache[video](0).Health(context.Background()); err != nil {
		t.Errorf("Health should always succeed, got %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache[video](0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for range 100 {
				_ = cache.Set(ctx, "concurrent-key", video{ID: string(rune('a' + n))}, time.Minute)
			}
		}(i)
		go func() {
			defer wg.Done()
			for range 100 {
				_, _ = cache.Get(ctx, "concurrent-key")
			}
		}()
	}
	wg.Wait()

	if _, err := cache.Get(ctx, "concurrent-key"); err != nil {
		t.Errorf("Cache corrupted after concurrent access: %v", err)
	}
}

func TestMemoryCache_GetWithFetch_CacheMiss(t *testing.T) {
	c := NewMemoryCache[video](0)
	ctx := context.Background()

	fetchCount := 0
	fetchFunc := func(ctx context.Context, key string) (video, error) {
		fetchCount++
		return video{ID: key, Title: "fetched"}, nil
	}

	value, err := c.GetWithFetch(ctx, "v9", time.Minute, fetchFunc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.ID != "v9" || value.Title != "fetched" {
		t.Errorf("unexpected value %+v", value)
	}

	// Second call should use cache (fetchFunc not called again)
	if _, err := c.GetWithFetch(ctx, "v9", time.Minute, fetchFunc); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if fetchCount != 1 {
		t.Errorf("expected fetchFunc called once, got %d", fetchCount)
	}
}

func TestMemoryCache_GetWithFetch_FetchError(t *testing.T) {
	c := NewMemoryCache[video](0)
	ctx := context.Background()

	expectedErr := errors.New("fetch failed")
	_, err := c.GetWithFetch(ctx, "v1", time.Minute,
		func(ctx context.Context, key string) (video, error) {
			return video{}, expectedErr
		},
	)
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected fetch error, got %v", err)
	}
	if _, err := c.Get(ctx, "v1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("failed fetch must not populate the cache, got %v", err)
	}
}

func TestMemoryCache_GetWithFetch_CoalescesConcurrentMisses(t *testing.T) {
	c := NewMemoryCache[video](0)
	ctx := context.Background()

	var fetchCount atomic.Int64
	release := make(chan struct{})
	fetchFunc := func(ctx context.Context, key string) (video, error) {
		fetchCount.Add(1)
		<-release
		return video{ID: key}, nil
	}

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			val, err := c.GetWithFetch(ctx, "shared-key", time.Minute, fetchFunc)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if val.ID != "shared-key" {
				t.Errorf("expected shared-key, got %q", val.ID)
			}
		})
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := fetchCount.Load(); n < 1 || n > 50 {
		t.Errorf("unexpected fetch count %d", n)
	}
}
