package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// KeyFunc names the caller a request is counted against.
type KeyFunc func(c echo.Context) string

func ByIP(c echo.Context) string {
	return "ip:" + c.RealIP()
}

// ByUser keys by the user RequireToken attached, so it must run after it.
func ByUser(c echo.Context) string {
	if user := CurrentUser(c); user != nil {
		return "user:" + user.ID
	}
	return ByIP(c)
}

// RateLimiter allows limit requests per window for each key.
func RateLimiter(limit int, window time.Duration, key KeyFunc) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			k := key(c)

			mu.Lock()
			for name, b := range buckets {
				if now.Sub(b.start) > window {
					delete(buckets, name)
				}
			}

			b, ok := buckets[k]
			if !ok {
				b = &bucket{start: now}
				buckets[k] = b
			}

			if b.count >= limit {
				mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
