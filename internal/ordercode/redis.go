package ordercode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "payos:order-code:"
	maxAttempts = 64
)

var ErrExhausted = errors.New("no free order code found")

// RedisAllocator reserves codes in Redis so that replicas sharing the same
// Redis never hand out the same code while a link can still be paid. Codes
// reserved in Redis and codes issued locally during an outage share one
// in-process floor, so this process never returns a code twice.
type RedisAllocator struct {
	client *redis.Client
	ttl    time.Duration
	local  *MemoryAllocator
	logger *slog.Logger
}

func NewRedisAllocator(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisAllocator {
	return &RedisAllocator{
		client: client,
		ttl:    ttl,
		local:  NewMemoryAllocator(),
		logger: logger,
	}
}

func (a *RedisAllocator) Next(ctx context.Context, seed int64) (int64, error) {
	candidate, err := a.local.Next(ctx, seed)
	if err != nil {
		return 0, err
	}

	code, err := a.reserve(ctx, candidate)
	switch {
	case err == nil:
		a.local.Advance(code)
		return code, nil
	case errors.Is(err, ErrExhausted):
		// every probed code belongs to another replica; step past them
		a.logger.WarnContext(ctx, "order code range exhausted, using local allocator", "seed", seed, "from", candidate)
		return a.local.Next(ctx, candidate+maxAttempts)
	default:
		a.logger.WarnContext(ctx, "order code reservation failed, using local allocator", "seed", seed, "err", err)
		return candidate, nil
	}
}

func (a *RedisAllocator) reserve(ctx context.Context, seed int64) (int64, error) {
	for code := seed; code < seed+maxAttempts; code++ {
		ok, err := a.client.SetNX(ctx, cacheKey(code), 1, a.ttl).Result()
		if err != nil {
			return 0, fmt.Errorf("redis setnx failed: %w", err)
		}
		if ok {
			return code, nil
		}
	}
	return 0, ErrExhausted
}

func cacheKey(code int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, code)
}
