package verification

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "verification:cooldown:"

// RedisThrottle allows one code per email per cooldown window using a
// SET NX key that expires with the window.
type RedisThrottle struct {
	client   redis.UniversalClient
	cooldown time.Duration
}

func NewRedisThrottle(client redis.UniversalClient, cooldown time.Duration) *RedisThrottle {
	return &RedisThrottle{
		client:   client,
		cooldown: cooldown,
	}
}

func (t *RedisThrottle) Acquire(ctx context.Context, email string) (time.Duration, error) {
	key := throttleKeyPrefix + email

	ok, err := t.client.SetNX(ctx, key, 1, t.cooldown).Result()
	if err != nil {
		return 0, err
	}

	if ok {
		return 0, nil
	}

	ttl, err := t.client.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		return t.cooldown, nil
	}

	return ttl, nil
}

func (t *RedisThrottle) Release(ctx context.Context, email string) error {
	return t.client.Del(ctx, throttleKeyPrefix+email).Err()
}
