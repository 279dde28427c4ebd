package verification

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptsKeyPrefix = "verification:attempts:"

// RedisAttemptLimiter keeps a per-email counter of wrong codes. The counter
// expires with the window that started at the first wrong code.
type RedisAttemptLimiter struct {
	client redis.UniversalClient
	max    int
	window time.Duration
}

func NewRedisAttemptLimiter(client redis.UniversalClient, max int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{
		client: client,
		max:    max,
		window: window,
	}
}

func (l *RedisAttemptLimiter) Blocked(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, attemptsKeyPrefix+email).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	return n >= l.max, nil
}

func (l *RedisAttemptLimiter) Failed(ctx context.Context, email string) error {
	key := attemptsKeyPrefix + email

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	if n == 1 {
		return l.client.Expire(ctx, key, l.window).Err()
	}

	return nil
}

func (l *RedisAttemptLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, attemptsKeyPrefix+email).Err()
}
