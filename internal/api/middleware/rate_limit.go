package middleware

import (
	"strconv"
	"time"

	"gastroguide/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRateLimiter 以「window 內最多 requests 次」建立令牌桶
func NewRateLimiter(requests int, window time.Duration) *rate.Limiter {
	if requests <= 0 || window <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
}

// RateLimit 行程內限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(c *gin.Context) {
		if !limiter.Allow() {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", retryAfter)
			common.AbortWithError(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()
	}
}
