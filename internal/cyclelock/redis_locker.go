package cyclelock

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisLocker backs the cycle lock with a Redis SET NX PX key so cycles stay
// mutually exclusive across processes. The TTL bounds how long a crashed
// holder can block the next cycle.
type RedisLocker struct {
	client rueidis.Client
	key    string
	ttl    time.Duration
}

func NewRedisLocker(client rueidis.Client, key string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context) error {
	cmd := l.client.B().Set().Key(l.key).Value("1").Nx().Px(l.ttl).Build()
	result := l.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return ErrCycleLocked
		}
		return err
	}

	return nil
}

func (l *RedisLocker) Release(ctx context.Context) error {
	cmd := l.client.B().Del().Key(l.key).Build()
	return l.client.Do(ctx, cmd).Error()
}
