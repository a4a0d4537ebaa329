package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig is a fixed window per client: at most Max requests every
// Window.
type RateLimitConfig struct {
	Window time.Duration
	Max    int64
}

// RateLimit counts requests in redis keyed by the authenticated user when
// available, falling back to the client IP. When redis is unavailable the
// limiter fails open; throttling is protection, not a correctness guarantee.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(c, cfg.Window)
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("ratelimit: redis unavailable, failing open: %v", err)
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}
			if n > cfg.Max {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}

func rateKey(c echo.Context, window time.Duration) string {
	client := UserID(c)
	if client == "" {
		client = c.RealIP()
	}
	bucket := time.Now().UTC().Truncate(window).Unix()
	return "ratelimit:" + client + ":" + strconv.FormatInt(bucket, 10)
}
