package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/logger"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/metrics"
)

// RedisRateLimitMiddleware enforces a fixed-window counter per key backed by
// Redis, so the limit holds across replicas. The window budget is
// rps*window seconds plus burst. On Redis errors the request is allowed
// through; availability wins over strictness here.
func RedisRateLimitMiddleware(client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = time.Minute
	}
	budget := int64(rps*window.Seconds()) + int64(burst)
	return func(c *gin.Context) {
		key := "ratelimit:" + limiterKey(c)
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warnf("redis rate limiter unavailable, allowing request: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.Warnf("failed to set rate limit window on %s: %v", key, err)
			}
		}
		if count > budget {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
