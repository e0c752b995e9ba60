package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/response"
)

// RateLimitMiddleware 对认证端点按来源 IP 做固定窗口限流。
// - scope 为端点名，各端点的预算相互独立。
// - 限流器本身 fail-open，Redis 故障时请求照常放行。
func RateLimitMiddleware(limiter redis.RateLimiter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), scope, c.ClientIP(), limit, window) {
			response.RespondError(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			return
		}
		c.Next()
	}
}
