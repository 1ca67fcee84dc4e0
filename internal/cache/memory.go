package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-authgate/authbridge/internal/core"

	"golang.org/x/sync/singleflight"
)

type cacheItem[T any] struct {
	value     T
	expiresAt time.Time
}

// Compile-time interface check.
var _ core.Cache[struct{}] = (*MemoryCache[struct{}])(nil)

// MemoryCache implements Cache interface with in-memory storage.
// Expired entries are dropped lazily on Get and by a periodic sweep.
// Suitable for single-instance deployments.
type MemoryCache[T any] struct {
	mu      sync.RWMutex
	items   map[string]cacheItem[T]
	group   singleflight.Group
	stop    chan struct{}
	stopped sync.Once
}

// NewMemoryCache creates a new memory cache instance. A positive sweepInterval
// starts a background goroutine that evicts expired entries until Close.
func NewMemoryCache[T any](sweepInterval time.Duration) *MemoryCache[T] {
	m := &MemoryCache[T]{
		items: make(map[string]cacheItem[T]),
		stop:  make(chan struct{}),
	}
	if sweepInterval > 0 {
		go m.sweep(sweepInterval)
	}
	return m
}

func (m *MemoryCache[T]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for key, item := range m.items {
				if now.After(item.expiresAt) {
					delete(m.items, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

// Get retrieves a value from cache.
func (m *MemoryCache[T]) Get(ctx context.Context, key string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, exists := m.items[key]
	if !exists || time.Now().After(item.expiresAt) {
		var zero T
		return zero, ErrCacheMiss
	}

	return item.value, nil
}

// Set stores a value in cache with TTL.
func (m *MemoryCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = cacheItem[T]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a key from cache.
func (m *MemoryCache[T]) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryCache[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Close stops the sweeper and drops all entries.
func (m *MemoryCache[T]) Close() error {
	m.stopped.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]cacheItem[T])
	return nil
}

// Health checks if the cache is healthy (always true for memory cache).
func (m *MemoryCache[T]) Health(ctx context.Context) error {
	return nil
}

// GetWithFetch retrieves a value using the cache-aside pattern.
// Concurrent misses for the same key share one fetchFunc call.
func (m *MemoryCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	if value, err := m.Get(ctx, key); err == nil {
		return value, nil
	}
	return fetchShared(ctx, &m.group, m, key, ttl, fetchFunc)
}

// fetchShared runs fetchFunc once per key across concurrent callers and stores the result.
func fetchShared[T any](
	ctx context.Context,
	group *singleflight.Group,
	c core.Cache[T],
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	v, err, _ := group.Do(key, func() (any, error) {
		value, err := fetchFunc(ctx, key)
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
