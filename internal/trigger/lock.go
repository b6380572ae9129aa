package trigger

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker serialises trigger runs. Acquire reports false when another run
// holds the lock.
type Locker interface {
	Acquire(ctx context.Context, runID string) (bool, error)
	Release(ctx context.Context, runID string) error
}

// LocalLocker only guards runs inside one process.
type LocalLocker struct {
	mu     sync.Mutex
	holder string
}

func (l *LocalLocker) Acquire(_ context.Context, runID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holder != "" {
		return false, nil
	}
	l.holder = runID
	return true, nil
}

func (l *LocalLocker) Release(_ context.Context, runID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holder == runID {
		l.holder = ""
	}
	return nil
}

const redisLockKey = "donkin:trigger:lock"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker guards runs across processes. The TTL bounds how long a
// crashed run can block later ones.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, runID string) (bool, error) {
	return l.client.SetNX(ctx, redisLockKey, runID, l.ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, runID string) error {
	return releaseScript.Run(ctx, l.client, []string{redisLockKey}, runID).Err()
}
