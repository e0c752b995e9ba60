package redis

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// Cache 定义了读穿透缓存的操作接口。
// - 目标: 加速博客列表/详情的读取，减轻数据库压力。数据库永远是事实源。
// - 所有操作 fail-open: 后端 Redis 出错时 Get 视为未命中，写类操作视为 no-op，
//   错误只记日志，绝不向调用方传播为用户可见的失败。
type Cache interface {
	// Get 读取缓存值。
	// - 未命中或后端出错时返回 myErrors.ErrCacheMiss，上层服务需要回源。
	Get(ctx context.Context, key string) (string, error)

	// Set 写入缓存值并设置 TTL。后端出错时静默放弃。
	Set(ctx context.Context, key string, value string, ttl time.Duration)

	// Delete 删除单个缓存 Key，用于精确清除 "blog:<id>" 详情缓存。
	Delete(ctx context.Context, key string)

	// DeleteByPattern 用 SCAN 遍历并删除所有匹配模式的 Key，返回删除数量。
	// - 用于写入后的列表缓存清扫 ("blogs:*")。
	// - 使用 SCAN 而非 KEYS，避免大键空间下阻塞 Redis。
	DeleteByPattern(ctx context.Context, pattern string) int64

	// IncrCounter 原子自增计数器并返回自增后的值。
	IncrCounter(ctx context.Context, key string) (int64, error)

	// Expire 为 Key 设置过期时间。
	Expire(ctx context.Context, key string, ttl time.Duration)
}

// redisCache 是 Cache 接口的 Redis 实现。
type redisCache struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewCache 是 redisCache 的构造函数。
func NewCache(redisClient *redis.Client, logger *core.ZapLogger) Cache {
	return &redisCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Get 实现缓存读取。
// 后端错误与 Key 不存在一视同仁: 都按未命中处理，让上层回源数据库。
func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("缓存读取失败，按未命中处理", zap.String("key", key), zap.Error(err))
		}
		return "", myErrors.ErrCacheMiss
	}
	return val, nil
}

// Set 实现缓存写入。写失败只影响下一次读的延迟，不影响正确性。
func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if err := c.redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("缓存写入失败，已忽略", zap.String("key", key), zap.Error(err))
	}
}

// Delete 实现单 Key 删除。
func (c *redisCache) Delete(ctx context.Context, key string) {
	if err := c.redisClient.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("缓存删除失败，已忽略", zap.String("key", key), zap.Error(err))
	}
}

// DeleteByPattern 实现按模式清扫。
// 逐批 SCAN 再批量 DEL，直到游标归零。任何一步出错都中止并返回已删除数量。
func (c *redisCache) DeleteByPattern(ctx context.Context, pattern string) int64 {
	var deleted int64
	var cursor uint64 = 0

	for {
		keys, nextCursor, err := c.redisClient.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.logger.Warn("缓存模式清扫 SCAN 失败，已中止",
				zap.String("pattern", pattern),
				zap.Uint64("cursor", cursor),
				zap.Error(err),
			)
			return deleted
		}

		if len(keys) > 0 {
			n, delErr := c.redisClient.Del(ctx, keys...).Result()
			if delErr != nil {
				c.logger.Warn("缓存模式清扫 DEL 失败，已中止",
					zap.String("pattern", pattern),
					zap.Int("batch", len(keys)),
					zap.Error(delErr),
				)
				return deleted
			}
			deleted += n
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("缓存模式清扫完成", zap.String("pattern", pattern), zap.Int64("deleted", deleted))
	return deleted
}

// IncrCounter 实现原子自增。
func (c *redisCache) IncrCounter(ctx context.Context, key string) (int64, error) {
	val, err := c.redisClient.Incr(ctx, key).Result()
	if err != nil {
		c.logger.Warn("缓存计数器自增失败", zap.String("key", key), zap.Error(err))
		return 0, err
	}
	return val, nil
}

// Expire 实现设置过期时间。
func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) {
	if err := c.redisClient.Expire(ctx, key, ttl).Err(); err != nil {
		c.logger.Warn("设置缓存过期时间失败，已忽略", zap.String("key", key), zap.Error(err))
	}
}
