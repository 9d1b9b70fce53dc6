package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window tracks the request count for one key within the current fixed window.
type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter enforces a fixed-window request limit per key. Counters live
// in process memory; a background sweep evicts expired windows.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	nowFunc func() time.Time // injectable clock for testing
	done    chan struct{}
	once    sync.Once
}

// NewRateLimiter creates a limiter allowing limit requests per period for
// each key. It starts a background goroutine that sweeps expired windows;
// call Stop to release it.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		nowFunc: time.Now,
		done:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Allow records a request for key and reports whether it is within the
// limit, along with the remaining quota and the window reset time.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, resetAt time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.nowFunc()
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(rl.period)}
		rl.windows[key] = w
	}

	w.count++
	remaining = rl.limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= rl.limit, remaining, w.resetAt
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// sweep evicts windows whose reset time has passed.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.nowFunc()
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// len returns the number of tracked windows (used in tests).
func (rl *RateLimiter) len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// Middleware returns a gin handler that limits requests keyed by client IP.
// keyPrefix separates independent limits sharing one limiter namespace.
func (rl *RateLimiter) Middleware(keyPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyPrefix + clientIP(c.Request)
		allowed, remaining, resetAt := rl.Allow(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(resetAt.Sub(rl.nowFunc()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// clientIP extracts the client IP from X-Forwarded-For, falling back to
// RemoteAddr with the port stripped.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if i := strings.Index(xff, ","); i >= 0 {
			first = xff[:i]
		}
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
