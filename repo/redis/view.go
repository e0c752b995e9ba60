package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
)

// BlogViewRepository 定义了与博客浏览量相关的 Redis 操作接口。
// - 浏览量先在 Redis 计数器中累积，由定时任务批量回写 MySQL。
//   两次回写之间进程崩溃会丢失增量，这是浏览量路径上被接受的近似一致性。
type BlogViewRepository interface {
	// IncrementViewCount 原子性地增加指定博客的浏览量计数。
	// - 该路径 fail-open: Redis 出错只记日志，不影响详情页读取。
	IncrementViewCount(ctx context.Context, blogID uint64)

	// GetAllViewCounts 使用 SCAN 命令分批获取 Redis 中所有博客的浏览量计数。
	// - 作为回写 MySQL 的数据源，用 SCAN 避免 KEYS 阻塞，MGET 批量取值。
	// - 输出: map[uint64]int64 (博客 ID -> 浏览量增量), error 操作错误。
	GetAllViewCounts(ctx context.Context) (map[uint64]int64, error)

	// DeleteViewCounts 删除已经成功回写数据库的计数 Key。
	// - 回写成功后调用，保证计数器里始终是"未落库的增量"而不是全量，
	//   避免重复累加。
	DeleteViewCounts(ctx context.Context, blogIDs []uint64) error
}

// blogViewRepository 是 BlogViewRepository 接口的 Redis 实现。
type blogViewRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
	viewSyncCfg config.ViewSyncConfig // 含 ScanBatchSize
}

// NewBlogViewRepository 创建 BlogViewRepository 实例。
func NewBlogViewRepository(redisClient *redis.Client, logger *core.ZapLogger, viewSyncCfg config.ViewSyncConfig) BlogViewRepository {
	return &blogViewRepository{
		redisClient: redisClient,
		logger:      logger,
		viewSyncCfg: viewSyncCfg,
	}
}

// IncrementViewCount 实现浏览量自增。
func (r *blogViewRepository) IncrementViewCount(ctx context.Context, blogID uint64) {
	key := fmt.Sprintf("%s%d", constant.BlogViewCountPrefix, blogID)
	if err := r.redisClient.Incr(ctx, key).Err(); err != nil {
		r.logger.Warn("增加博客浏览量失败，已忽略", zap.Uint64("blogID", blogID), zap.Error(err))
	}
}

// GetAllViewCounts 使用 SCAN 安全地迭代并获取所有博客的浏览量增量。
// 主要由定时任务调用，将数据同步到 MySQL。
func (r *blogViewRepository) GetAllViewCounts(ctx context.Context) (map[uint64]int64, error) {
	viewCounts := make(map[uint64]int64)
	var cursor uint64 = 0
	matchPattern := constant.BlogViewCountPrefix + "*"

	scanCount := r.viewSyncCfg.ScanBatchSize
	if scanCount <= 0 {
		scanCount = 1000 // Fallback if config value is invalid or zero
		r.logger.Warn("GetAllViewCounts: 配置中的 ScanBatchSize 无效或为零，使用默认值。",
			zap.Int64("defaultScanBatchSize", scanCount),
			zap.Int64("configuredScanBatchSize", r.viewSyncCfg.ScanBatchSize),
		)
	}

	r.logger.Info("开始扫描 Redis 获取所有博客浏览量",
		zap.String("pattern", matchPattern),
		zap.Int64("scan_batch_size", scanCount),
	)
	startTime := time.Now()

	for {
		keys, nextCursor, err := r.redisClient.Scan(ctx, cursor, matchPattern, scanCount).Result()
		if err != nil {
			r.logger.Error("执行 Redis SCAN 命令失败",
				zap.Error(err),
				zap.Uint64("cursor", cursor),
				zap.String("pattern", matchPattern),
			)
			return nil, fmt.Errorf("扫描 Redis Keys 失败 (模式: %s): %w", matchPattern, err)
		}

		if len(keys) > 0 {
			values, mgetErr := r.redisClient.MGet(ctx, keys...).Result()
			if mgetErr != nil {
				r.logger.Error("执行 Redis MGET 命令批量获取浏览量失败",
					zap.Error(mgetErr),
					zap.Strings("keys_in_batch", keys),
				)
				return nil, fmt.Errorf("批量获取浏览量值失败 (%d keys): %w", len(keys), mgetErr)
			}

			for i, key := range keys {
				blogIDStr := strings.TrimPrefix(key, constant.BlogViewCountPrefix)
				blogID, parseErr := strconv.ParseUint(blogIDStr, 10, 64)
				if parseErr != nil {
					r.logger.Error("从 Redis Key 解析博客 ID 失败，已跳过该 Key。",
						zap.Error(parseErr),
						zap.String("key", key),
					)
					continue
				}

				viewCount := int64(0)
				if i < len(values) && values[i] != nil {
					if valueStr, ok := values[i].(string); ok && valueStr != "" {
						parsedCount, parseCountErr := strconv.ParseInt(valueStr, 10, 64)
						if parseCountErr != nil {
							r.logger.Error("解析 Redis 中的浏览量值失败，该博客浏览量将视为 0。",
								zap.Error(parseCountErr),
								zap.String("key", key),
								zap.String("value_str", valueStr),
							)
						} else {
							viewCount = parsedCount
						}
					} else {
						r.logger.Warn("Redis Key 的值类型不是有效字符串或为空，该博客浏览量将视为 0。",
							zap.String("key", key),
							zap.Any("value", values[i]),
						)
					}
				}
				viewCounts[blogID] = viewCount
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	r.logger.Info("完成扫描 Redis 博客浏览量",
		zap.Int("total_unique_blogs_found", len(viewCounts)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return viewCounts, nil
}

// DeleteViewCounts 删除已回写的计数 Key。
func (r *blogViewRepository) DeleteViewCounts(ctx context.Context, blogIDs []uint64) error {
	if len(blogIDs) == 0 {
		return nil
	}
	keys := make([]string, len(blogIDs))
	for i, id := range blogIDs {
		keys[i] = fmt.Sprintf("%s%d", constant.BlogViewCountPrefix, id)
	}
	if err := r.redisClient.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("删除已回写的浏览量计数 Key 失败", zap.Int("count", len(keys)), zap.Error(err))
		return fmt.Errorf("删除浏览量计数 Key 失败 (%d keys): %w", len(keys), err)
	}
	r.logger.Debug("已删除回写完成的浏览量计数 Key", zap.Int("count", len(keys)))
	return nil
}
