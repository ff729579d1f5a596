package middleware

import (
	"strconv"
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"
	"studytrack_backend/pkg/monitoring"
	"time"

	"github.com/gin-gonic/gin"
)

// ExportRateLimit gates an endpoint with the per-user sliding window.
// Standard X-RateLimit headers are set on every response; a denied
// request additionally carries Retry-After and gets a 429.
func ExportRateLimit(limiter *service.RateLimitService, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		result := limiter.Check(c.Request.Context(), strconv.FormatUint(uint64(claims.UserID), 10), "export", limit, window)

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt/1000, 10))

		if !result.Allowed {
			monitoring.ExportCounter.WithLabelValues("throttled").Inc()
			c.Header("Retry-After", strconv.FormatInt(result.RetryAfter, 10))
			util.TooManyRequests(c, "Export limit reached, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
