package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// PopularBlogsCacheSize 预热进榜单的博客数量。
const PopularBlogsCacheSize = 10

// PopularBlogsCacheTask 负责定时刷新 Redis 中的热门博客榜单缓存。
// 榜单键与列表缓存共用 "blogs:" 前缀，写路径的模式清扫会一并使其失效，
// 本任务保证清扫后榜单能在下个周期内重新预热。
type PopularBlogsCacheTask struct {
	blogRepo mysql.BlogRepository
	cache    redis.Cache
	cron     *cron.Cron
	logger   *core.ZapLogger
}

// NewPopularBlogsCacheTask 初始化并启动热门博客榜单缓存的定时任务。
func NewPopularBlogsCacheTask(blogRepo mysql.BlogRepository, cache redis.Cache, logger *core.ZapLogger) *PopularBlogsCacheTask {
	cronV3 := cron.New() // 默认分钟级精度

	task := &PopularBlogsCacheTask{
		blogRepo: blogRepo,
		cache:    cache,
		cron:     cronV3,
		logger:   logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业，调度表达式见 constant.PopularBlogsCacheCronSpec。
func (t *PopularBlogsCacheTask) startCronJob() {
	schedule := constant.PopularBlogsCacheCronSpec
	t.logger.Info("准备启动热门博客榜单缓存刷新定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("热门博客榜单缓存刷新任务开始执行...")
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.refreshPopularCache(ctx)

		duration := time.Since(startTime)
		t.logger.Info("热门博客榜单缓存刷新任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加热门博客榜单缓存刷新 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("热门博客榜单缓存刷新定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// refreshPopularCache 查询浏览量最高的公开博客并覆盖写入榜单缓存。
// 与读路径的兜底回源不同，这里无条件覆盖，保证榜单数据不过期。
func (t *PopularBlogsCacheTask) refreshPopularCache(ctx context.Context) {
	blogs, err := t.blogRepo.ListTopViewedBlogs(ctx, PopularBlogsCacheSize)
	if err != nil {
		t.logger.Error("查询热门博客失败，本次预热中止。", zap.Error(err))
		return
	}

	list := &vo.BlogListVO{
		Blogs: vo.MapBlogsToVOs(blogs),
		Total: int64(len(blogs)),
	}
	payload, err := json.Marshal(list)
	if err != nil {
		t.logger.Error("序列化热门博客榜单失败", zap.Error(err))
		return
	}

	t.cache.Set(ctx, constant.PopularBlogsCacheKey, string(payload), constant.PopularBlogsCacheTTL)
	t.logger.Info("热门博客榜单缓存已刷新", zap.Int("博客数量", len(blogs)))
}

// Stop 优雅地停止 cron 调度器。
func (t *PopularBlogsCacheTask) Stop() context.Context {
	t.logger.Info("正在停止热门博客榜单缓存刷新定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("热门博客榜单缓存刷新定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
