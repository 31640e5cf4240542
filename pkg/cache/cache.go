package cache

import (
	"context"
	"time"

	"go-social-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Store is a best-effort key/value memo. Implementations must be fail-open:
// a backend error behaves exactly like a miss, so callers never need to know
// whether a cache is configured, reachable, or working.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, pattern string)
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected Redis client. If client is nil a no-op
// store is returned instead, so wiring code does not have to branch.
func NewRedisStore(client *redis.Client) Store {
	if client == nil {
		return Noop{}
	}
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Debug("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Log.Debug("cache set failed", "key", key, "error", err)
	}
}

func (s *redisStore) Invalidate(ctx context.Context, pattern string) {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Log.Debug("cache delete failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		logger.Log.Debug("cache scan failed", "pattern", pattern, "error", err)
	}
}

// Noop satisfies Store when no cache backend is configured.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, bool)                 { return nil, false }
func (Noop) Set(ctx context.Context, key string, value []byte, t time.Duration) {}
func (Noop) Invalidate(ctx context.Context, pattern string)                     {}
