package ports

import "context"

// RateLimiter throttles requests. Allow reports whether the attempt
// identified by key (a client address, or address plus target account for
// the login limiter) is within quota. An error means the limiter backend is
// unreachable, not that the attempt is denied; callers decide whether to
// fail open.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
