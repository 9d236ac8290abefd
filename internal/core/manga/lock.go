// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/mangaverse/internal/platform/constants"
	"github.com/taibuivan/mangaverse/pkg/uuid"
)

// ErrLocked is returned when another holder owns the sync lock for a URL.
var ErrLocked = errors.New("manga: sync already in progress")

// # Sync Locking

// Locker serializes reconciliation per manga URL.
type Locker interface {
	// Acquire takes the lock for key or fails with [ErrLocked]. The returned
	// release function must be called once the work is done.
	Acquire(context context.Context, key string) (release func(), err error)
}

// NoopLocker never blocks. Used when Redis is not configured.
type NoopLocker struct{}

// Acquire always succeeds.
func (NoopLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements [Locker] with SET NX PX and token-checked release.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisLocker constructs a Redis backed locker. ttl bounds how long a crashed holder blocks others.
func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, logger: logger}
}

// Acquire takes the lock for key.
func (locker *RedisLocker) Acquire(context context.Context, key string) (func(), error) {
	redisKey := constants.RedisPrefixSyncLock + key
	token := uuid.New()

	acquired, err := locker.client.SetNX(context, redisKey, token, locker.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to acquire sync lock: %w", err)
	}
	if !acquired {
		return nil, ErrLocked
	}

	release := func() { locker.release(redisKey, token) }

	return release, nil
}

// release drops the lock if token still owns it. A failure leaves the key to expire with its TTL.
func (locker *RedisLocker) release(redisKey, token string) {
	// Fresh context: the request context may already be cancelled.
	releaseCtx, cancel := contextWithTimeout(locker.ttl)
	defer cancel()

	if err := releaseScript.Run(releaseCtx, locker.client, []string{redisKey}, token).Err(); err != nil {
		locker.logger.Warn("sync_lock_release_failed",
			slog.String("key", redisKey),
			slog.Duration("expires_in", locker.ttl),
			slog.Any("error", err),
		)
	}
}

// contextWithTimeout returns a background context bounded by d, capped at five seconds.
func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), min(d, 5*time.Second))
}
