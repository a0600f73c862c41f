package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/task-system/internal/api/metrics"
	redisstore "github.com/taskboard/task-system/internal/infrastructure/db/redis"
)

// Limiter decides whether one more hit for scope/id is allowed.
type Limiter interface {
	Allow(ctx context.Context, scope, id string) (redisstore.Decision, error)
}

// RateLimit rejects clients that exceed limiter's budget for scope with 429.
// Clients are keyed by real IP. Limiter failures let the request through.
func RateLimit(limiter Limiter, scope string, m *metrics.Metrics, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d, err := limiter.Allow(c.Request().Context(), scope, c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				m.RateLimitedTotal.WithLabelValues(scope).Inc()
				h.Set(echo.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
			}
			return next(c)
		}
	}
}
