// dependencies/redis.go
package dependencies

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
)

// InitRedis 初始化 Redis 客户端并验证连通性。
// 缓存层对运行期错误是 fail-open 的，但启动时连不上 Redis 视为致命配置问题。
func InitRedis(cfg *appConfig.RedisConfig, logger *core.ZapLogger) (*redis.Client, error) {
	if cfg == nil || cfg.Address == "" {
		return nil, fmt.Errorf("redis 地址 (redis.address) 未配置")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("Redis Ping 失败", zap.String("address", cfg.Address), zap.Error(err))
		return nil, fmt.Errorf("无法连接到 Redis (%s): %w", cfg.Address, err)
	}

	logger.Info("Redis 连接成功", zap.String("address", cfg.Address), zap.Int("db", cfg.DB))
	return rdb, nil
}
