package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Limiter implements sliding-window rate limiting backed by Redis.
type Limiter struct {
	client    *redis.Client
	keyPrefix string
}

func NewLimiter(client *redis.Client, keyPrefix string) *Limiter {
	return &Limiter{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Lua script keeps the window check and the insert atomic. An INCR
// counter generates unique member values for requests landing on the
// same millisecond.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current = redis.call('ZCARD', key)

	if current < limit then
		local counter = redis.call('INCR', key .. ':counter')
		redis.call('ZADD', key, now, now .. ':' .. counter)
		local expire_seconds = math.ceil(window_ms / 1000)
		redis.call('EXPIRE', key, expire_seconds)
		redis.call('EXPIRE', key .. ':counter', expire_seconds)
		return 1
	end

	return 0
`)

// Allow reports whether a request under key fits in the window.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	allowed, err := slidingWindowScript.Run(
		ctx,
		l.client,
		[]string{l.keyPrefix + key},
		now.UnixMilli(),
		now.Add(-window).UnixMilli(),
		limit,
		window.Milliseconds(),
	).Int64()
	if err != nil {
		return false, err
	}

	return allowed == 1, nil
}

// RateLimitMiddleware limits each client IP to limit requests per window.
// Redis errors fail open: the request goes through and the error is logged.
func RateLimitMiddleware(limiter *Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP(), limit, window)
		if err != nil {
			log.Printf("rate limit check failed: %v", err)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later.",
			})
			return
		}

		c.Next()
	}
}
