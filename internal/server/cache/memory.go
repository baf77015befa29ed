package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type item struct {
	value   []byte
	expires time.Time
}

// MemoryCache keeps entries in a map. Expired entries are dropped lazily on
// read. A zero ttl means no expiry.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]item
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]item), now: time.Now}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if !it.expires.IsZero() && !c.now().Before(it.expires) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, ErrMiss
	}
	return it.value, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	it := item{value: append([]byte(nil), value...)}
	if ttl > 0 {
		it.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = it
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.counter(key)
	if err != nil {
		return 0, err
	}
	n++
	c.items[key] = item{value: []byte(strconv.FormatInt(n, 10))}
	return n, nil
}

func (c *MemoryCache) SetIfCounter(ctx context.Context, key string, value []byte, ttl time.Duration, counterKey string, want int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.counter(counterKey)
	if err != nil {
		return false, err
	}
	if n != want {
		return false, nil
	}
	it := item{value: append([]byte(nil), value...)}
	if ttl > 0 {
		it.expires = c.now().Add(ttl)
	}
	c.items[key] = it
	return true, nil
}

// counter must be called with mu held.
func (c *MemoryCache) counter(key string) (int64, error) {
	it, ok := c.items[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(string(it.value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", key, err)
	}
	return n, nil
}
