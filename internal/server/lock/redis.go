package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// errBusy is returned when the lock is still held after maxWait. It wraps
// ErrConflictRetry so callers see a retryable conflict.
var errBusy = fmt.Errorf("lock busy: %w", common.ErrConflictRetry)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is left alone.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// redisClient is the part of *redis.Client the locker needs.
type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker shares locks between server instances via SET NX PX.
type RedisLocker struct {
	client  redisClient
	prefix  string
	ttl     time.Duration
	poll    time.Duration
	maxWait time.Duration
}

func NewRedisLocker(client redisClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:  client,
		prefix:  "gophchat:lock:",
		ttl:     ttl,
		poll:    25 * time.Millisecond,
		maxWait: ttl,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	b := retry.WithMaxDuration(l.maxWait, retry.NewConstant(l.poll))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("%w: redis lock: %w", common.ErrBackendUnavailable, err)
		}
		if !ok {
			return retry.RetryableError(errBusy)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}

	return func() {
		// Best effort: the TTL reclaims the key if this fails.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = l.client.Eval(ctx, releaseScript, []string{fullKey}, token).Err()
	}, nil
}
