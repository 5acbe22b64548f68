package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amezghal/careergate/internal/cache"
	apperrors "github.com/amezghal/careergate/pkg/errors"
	"github.com/amezghal/careergate/pkg/logger"
	"github.com/amezghal/careergate/pkg/response"
)

// RateLimit caps requests per (clientIP, path) within a fixed window using
// the shared cache store, so the limit holds across instances when Redis
// backs the store. A store failure fails open; throttling is best effort.
func RateLimit(store cache.Store, maxRequests int, window time.Duration) gin.HandlerFunc {
	log := logger.WithModule("ratelimit")

	return func(c *gin.Context) {
		if store == nil || maxRequests <= 0 || window <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + c.ClientIP() + "|" + c.FullPath()
		count, remaining, err := store.IncrementWithTTL(c.Request.Context(), key, window)
		if err != nil {
			log.Warn("rate limit store unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(maxInt64(0, int64(maxRequests)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(remaining.Seconds())))

		if count > int64(maxRequests) {
			response.Error(c, apperrors.ErrRateLimit)
			c.Abort()
			return
		}

		c.Next()
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
