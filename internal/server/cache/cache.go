// Package cache is a small byte-oriented key/value cache with an in-memory
// implementation and a Redis adapter.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error

	// Incr bumps the counter at key and returns its new value. Counters do
	// not expire.
	Incr(ctx context.Context, key string) (int64, error)
	// SetIfCounter stores value under key only if the counter at counterKey
	// still equals want; a missing counter reads as zero. The check and the
	// write are atomic.
	SetIfCounter(ctx context.Context, key string, value []byte, ttl time.Duration, counterKey string, want int64) (bool, error)
}

// Counter reads the counter at key. A missing counter is zero.
func Counter(ctx context.Context, c Cache, key string) (int64, error) {
	b, err := c.Get(ctx, key)
	if errors.Is(err, ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", key, err)
	}
	return n, nil
}
