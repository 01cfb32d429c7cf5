package middlewares

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/usforever/api/internal/redisclient"
)

// WindowCounter records one hit for key and reports the hits so far in the
// current fixed window and the time until that window ends.
type WindowCounter interface {
	Hit(ctx context.Context, key string) (count int64, resetIn time.Duration, err error)
}

type RateLimiter struct {
	limit   int64
	counter WindowCounter
	log     *slog.Logger
}

func NewRateLimiter(limit int, counter WindowCounter, log *slog.Logger) *RateLimiter {
	return &RateLimiter{
		limit:   int64(limit),
		counter: counter,
		log:     log,
	}
}

// RateLimiterMiddleware enforces the limit per derived key. A failing
// counter lets the request through.
func (rl *RateLimiter) RateLimiterMiddleware(scope string, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			key = clientIP(c)
		}

		count, resetIn, err := rl.counter.Hit(c.Request.Context(), "ratelimit:"+scope+":"+key)

		if err != nil {
			rl.log.WarnContext(c.Request.Context(), "rate limiter unavailable", "err", err, "scope", scope)
			c.Next()
			return
		}

		if count > rl.limit {
			retryAfter := int(resetIn.Round(time.Second).Seconds())

			if retryAfter < 0 {
				retryAfter = 0
			}

			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":      "rate_limited",
					"message":   "Too many requests. Please try again shortly.",
					"requestId": c.GetString(CtxRequestID),
				},
			})

			return
		}

		c.Next()
	}
}

const sweepThreshold = 1024

// MemoryCounter keeps windows in process memory. Use it for a single instance.
type MemoryCounter struct {
	mu      sync.Mutex
	window  time.Duration
	clients map[string]*clientBucket
	now     func() time.Time
}

type clientBucket struct {
	count     int64
	windowEnd time.Time
}

func NewMemoryCounter(window time.Duration) *MemoryCounter {
	return &MemoryCounter{
		window:  window,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

func (m *MemoryCounter) Hit(_ context.Context, key string) (int64, time.Duration, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.clients[key]

	if !ok || now.After(b.windowEnd) {
		if len(m.clients) >= sweepThreshold {
			m.sweep(now)
		}

		b = &clientBucket{windowEnd: now.Add(m.window)}
		m.clients[key] = b
	}

	b.count++

	return b.count, b.windowEnd.Sub(now), nil
}

// sweep drops expired buckets. Callers hold mu.
func (m *MemoryCounter) sweep(now time.Time) {
	for k, b := range m.clients {
		if now.After(b.windowEnd) {
			delete(m.clients, k)
		}
	}
}

// RedisCounter shares windows between instances through redis.
type RedisCounter struct {
	client *redisclient.Client
	window time.Duration
}

func NewRedisCounter(client *redisclient.Client, window time.Duration) *RedisCounter {
	return &RedisCounter{client: client, window: window}
}

func (r *RedisCounter) Hit(ctx context.Context, key string) (int64, time.Duration, error) {
	return r.client.IncrWindow(ctx, key, r.window)
}

// KeyByIP rate limits unauthenticated endpoints by client address.
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	// Gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
