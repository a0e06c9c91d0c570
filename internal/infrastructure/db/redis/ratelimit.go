package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter is a fixed-window request throttle backed by Redis.
// Key format: ratelimit:<scope>:<key>
//
// The first attempt in a window INCRs the counter to 1 and sets the window
// TTL; subsequent attempts INCR until the limit, after which Allow reports
// false until the key expires. Fixed windows admit up to 2x the limit at a
// window boundary, which is acceptable for request throttling.
//
// Two scopes are wired: "api" (per client address, all /api routes) and
// "login" (per address plus target account, stricter quota).
type FixedWindowLimiter struct {
	client *redis.Client
	scope  string
	limit  int
	window time.Duration
}

// NewFixedWindowLimiter creates a limiter allowing limit attempts per
// window within the given scope.
func NewFixedWindowLimiter(client *redis.Client, scope string, limit int, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{client: client, scope: scope, limit: limit, window: window}
}

// Allow reports whether the attempt identified by key is within quota.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.key(key)

	n, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}

func (l *FixedWindowLimiter) key(key string) string {
	return "ratelimit:" + l.scope + ":" + key
}
