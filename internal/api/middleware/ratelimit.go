package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/companyhq/company-api/internal/api/metrics"
	"github.com/companyhq/company-api/internal/core/ports"
)

// maxPeekBytes bounds how much of a login body peekEmail will buffer.
// Login payloads are a few hundred bytes; anything past this is not going
// to contain a legitimate email field.
const maxPeekBytes = 64 << 10

// RateLimit throttles all requests through a route group, keyed by client
// address. When the limiter backend errors the request is allowed through
// with a warning: throttling is protection, not a dependency.
func RateLimit(limiter ports.RateLimiter, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues("api").Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

// LoginRateLimit throttles login attempts with a stricter quota than the
// general limiter. The key combines client address and target email so one
// address cannot lock out an account from elsewhere, and one account
// cannot be hammered across many addresses without each keying separately.
func LoginRateLimit(limiter ports.RateLimiter, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP() + ":" + peekEmail(c)

			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues("login").Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}
			return next(c)
		}
	}
}

// peekEmail reads the email field from the JSON body without consuming it.
// At most maxPeekBytes is buffered; the buffered prefix is stitched back in
// front of the unread remainder so the handler's own bind still sees the
// full body. An email past the limit is simply not part of the key.
func peekEmail(c echo.Context) string {
	req := c.Request()
	if req.Body == nil {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(req.Body, maxPeekBytes))
	req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), req.Body))
	if err != nil {
		return ""
	}

	var body struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(raw, &body)
	return strings.ToLower(strings.TrimSpace(body.Email))
}
