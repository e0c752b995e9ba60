package mysql

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// ActionLogRepository 定义了管理操作日志的持久化接口。
// 日志是只追加的，没有更新和删除操作。
type ActionLogRepository interface {
	// AppendLog 追加一条操作日志。
	// - 传入 db 参数以便与触发它的管理操作在同一事务中提交，
	//   保证"操作生效则必有日志"。
	AppendLog(ctx context.Context, db *gorm.DB, log *entities.AdminActionLog) error

	// ListLogs 分页查询操作日志，按时间降序。
	ListLogs(ctx context.Context, offset, limit int) ([]*entities.AdminActionLog, int64, error)
}

type actionLogRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewActionLogRepository 是 actionLogRepository 的构造函数。
func NewActionLogRepository(db *gorm.DB, logger *core.ZapLogger) ActionLogRepository {
	return &actionLogRepository{db: db, logger: logger}
}

// AppendLog 实现日志追加。
func (r *actionLogRepository) AppendLog(ctx context.Context, db *gorm.DB, log *entities.AdminActionLog) error {
	if err := db.WithContext(ctx).Create(log).Error; err != nil {
		r.logger.Error("追加管理操作日志失败",
			zap.Uint64("adminID", log.AdminID),
			zap.String("action", string(log.Action)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ListLogs 实现日志的分页查询。
func (r *actionLogRepository) ListLogs(ctx context.Context, offset, limit int) ([]*entities.AdminActionLog, int64, error) {
	var logs []*entities.AdminActionLog
	var totalCount int64

	if err := r.db.WithContext(ctx).Model(&entities.AdminActionLog{}).Count(&totalCount).Error; err != nil {
		r.logger.Error("操作日志：计数查询失败", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return logs, 0, nil
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error
	if err != nil {
		r.logger.Error("操作日志：列表查询失败", zap.Error(err))
		return nil, 0, err
	}
	return logs, totalCount, nil
}
