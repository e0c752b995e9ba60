package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// ViewCountSyncTask 负责定时将 Redis 中缓冲的博客浏览量增量回写到 MySQL。
// 流程: 取出全量增量 -> 批量累加到数据库 -> 删除已回写的 Redis 计数器。
type ViewCountSyncTask struct {
	blogViewRepo  redis.BlogViewRepository            // Redis 仓库，读取并清理浏览量增量
	blogBatchRepo mysql.BlogBatchOperationsRepository // MySQL 批量操作仓库，累加浏览量
	cron          *cron.Cron
	logger        *core.ZapLogger
}

// NewViewCountSyncTask 初始化并启动浏览量同步的定时任务。
func NewViewCountSyncTask(
	blogViewRepo redis.BlogViewRepository,
	blogBatchRepo mysql.BlogBatchOperationsRepository,
	logger *core.ZapLogger,
) *ViewCountSyncTask {
	cronV3 := cron.New() // 默认分钟级精度
	task := &ViewCountSyncTask{
		blogViewRepo:  blogViewRepo,
		blogBatchRepo: blogBatchRepo,
		cron:          cronV3,
		logger:        logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业，调度表达式见 constant.SyncViewCountInterval。
func (t *ViewCountSyncTask) startCronJob() {
	schedule := constant.SyncViewCountInterval
	t.logger.Info("准备启动博客浏览量同步MySQL定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("博客浏览量同步MySQL任务开始执行...")
		startTime := time.Now()
		// 单次执行超时 3 分钟，覆盖 Redis 读取与 MySQL 批量更新。
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		t.syncViewCountsToDB(ctx)

		duration := time.Since(startTime)
		t.logger.Info("博客浏览量同步MySQL任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		// schedule 表达式错误属于编码错误，直接 Fatal。
		t.logger.Fatal("添加博客浏览量同步 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("博客浏览量同步MySQL定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// syncViewCountsToDB 是定时任务执行的实际同步逻辑。
// 1. 从 Redis 获取全量浏览量增量。
// 2. 批量累加到 MySQL。
// 3. 回写成功后删除对应的 Redis 计数器，避免增量被重复累加。
func (t *ViewCountSyncTask) syncViewCountsToDB(ctx context.Context) {
	t.logger.Info("任务步骤1: 开始从 Redis 获取全量浏览量增量...")
	viewDeltas, err := t.blogViewRepo.GetAllViewCounts(ctx)
	if err != nil {
		t.logger.Error("从 Redis 获取浏览量增量失败，本次同步中止。", zap.Error(err))
		return
	}

	countFromRedis := len(viewDeltas)
	if countFromRedis == 0 {
		t.logger.Info("Redis 中没有待回写的浏览量增量，无需同步。")
		return
	}
	t.logger.Info("任务步骤1: 成功获取浏览量增量。", zap.Int("博客数量", countFromRedis))

	t.logger.Info("任务步骤2: 开始将浏览量增量批量累加到 MySQL...")
	if err := t.blogBatchRepo.BatchIncrementViewCounts(ctx, viewDeltas); err != nil {
		// 累加失败时保留 Redis 计数器，等下个周期重试。
		t.logger.Error("批量累加浏览量失败，保留 Redis 增量等待下次重试",
			zap.Error(err),
			zap.Int("提交数量", countFromRedis),
		)
		return
	}
	t.logger.Info("任务步骤2: 浏览量增量已累加到 MySQL。", zap.Int("提交数量", countFromRedis))

	blogIDs := make([]uint64, 0, countFromRedis)
	for blogID := range viewDeltas {
		blogIDs = append(blogIDs, blogID)
	}
	t.logger.Info("任务步骤3: 开始清理已回写的 Redis 计数器...")
	if err := t.blogViewRepo.DeleteViewCounts(ctx, blogIDs); err != nil {
		// 清理失败意味着下个周期会重复累加这批增量，需要人工关注。
		t.logger.Error("清理 Redis 浏览量计数器失败，存在重复累加风险",
			zap.Error(err),
			zap.Int("计数器数量", len(blogIDs)),
		)
		return
	}
	t.logger.Info("任务步骤3: Redis 浏览量计数器已清理。", zap.Int("计数器数量", len(blogIDs)))
}

// Stop 优雅地停止 cron 调度器。
// 返回一个 context，调用者可以使用它来等待正在运行的任务完成。
func (t *ViewCountSyncTask) Stop() context.Context {
	t.logger.Info("正在停止博客浏览量同步MySQL定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("博客浏览量同步MySQL定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
