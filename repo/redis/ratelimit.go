package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
)

// RateLimiter 定义按标识（通常为来源 IP）的固定窗口限流接口。
// - fail-open: Redis 出错时放行请求。限流是保护措施，不是正确性约束，
//   后端故障不应使认证端点整体不可用。
type RateLimiter interface {
	// Allow 判断 scope（端点名）下 identifier 在当前窗口内是否仍有预算。
	Allow(ctx context.Context, scope string, identifier string, limit int, window time.Duration) bool
}

type rateLimiter struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewRateLimiter 创建 RateLimiter 实例。
func NewRateLimiter(redisClient *redis.Client, logger *core.ZapLogger) RateLimiter {
	return &rateLimiter{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Allow 实现固定窗口限流。
// INCR 计数，首个请求时设置窗口过期时间；计数超过预算则拒绝。
func (r *rateLimiter) Allow(ctx context.Context, scope string, identifier string, limit int, window time.Duration) bool {
	key := fmt.Sprintf("%s%s:%s", constant.RateLimitPrefix, scope, identifier)

	count, err := r.redisClient.Incr(ctx, key).Result()
	if err != nil {
		r.logger.Warn("限流计数失败，放行请求", zap.String("key", key), zap.Error(err))
		return true
	}

	if count == 1 {
		if err := r.redisClient.Expire(ctx, key, window).Err(); err != nil {
			r.logger.Warn("设置限流窗口过期时间失败", zap.String("key", key), zap.Error(err))
		}
	}

	if count > int64(limit) {
		r.logger.Info("请求触发限流",
			zap.String("scope", scope),
			zap.String("identifier", identifier),
			zap.Int64("count", count),
			zap.Int("limit", limit),
		)
		return false
	}
	return true
}
