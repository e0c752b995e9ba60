package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// ReportRepository 定义了举报数据的持久化操作接口。
type ReportRepository interface {
	// CreateReport 持久化一条举报记录。
	// - (blog_id, reporter_id) 唯一索引冲突时返回 myErrors.ErrAlreadyReported。
	//   去重交给数据库约束裁决，并发的重复举报只会有一条胜出。
	CreateReport(ctx context.Context, report *entities.Report) error

	// GetReportByID 根据 ID 检索举报，未找到时返回 commonerrors.ErrRepoNotFound。
	GetReportByID(ctx context.Context, id uint64) (*entities.Report, error)

	// ListReports 分页查询举报列表，可按状态筛选，按创建时间降序。
	ListReports(ctx context.Context, status *enums.ReportStatus, offset, limit int) ([]*entities.Report, int64, error)

	// MarkReviewed 将 pending 状态的举报标记为 reviewed。
	// - WHERE 同时限定 status = pending，并发复审时只有一个请求能命中行，
	//   未命中者由调用方区分"不存在"与"已复审"。
	MarkReviewed(ctx context.Context, db *gorm.DB, id uint64, reviewedBy uint64, reviewedAt time.Time) (bool, error)

	// DeleteReportsByBlogID 物理删除某博客的全部举报，用于博客硬删除时的级联清理。
	DeleteReportsByBlogID(ctx context.Context, db *gorm.DB, blogID uint64) error
}

type reportRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewReportRepository 是 reportRepository 的构造函数。
func NewReportRepository(db *gorm.DB, logger *core.ZapLogger) ReportRepository {
	return &reportRepository{db: db, logger: logger}
}

// CreateReport 实现举报插入。
// 依赖 gorm.Config{TranslateError: true} 将唯一键冲突翻译为 gorm.ErrDuplicatedKey。
func (r *reportRepository) CreateReport(ctx context.Context, report *entities.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return myErrors.ErrAlreadyReported
		}
		r.logger.Error("创建举报记录失败",
			zap.Uint64("blogID", report.BlogID),
			zap.String("reporterID", report.ReporterID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// GetReportByID 实现按 ID 查询举报。
func (r *reportRepository) GetReportByID(ctx context.Context, id uint64) (*entities.Report, error) {
	var report entities.Report
	err := r.db.WithContext(ctx).First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取举报失败", zap.Uint64("reportID", id), zap.Error(err))
		return nil, err
	}
	return &report, nil
}

// ListReports 实现举报的分页条件查询。
func (r *reportRepository) ListReports(ctx context.Context, status *enums.ReportStatus, offset, limit int) ([]*entities.Report, int64, error) {
	var reports []*entities.Report
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entities.Report{})
	countQuery := r.db.WithContext(ctx).Model(&entities.Report{})
	if status != nil {
		query = query.Where("status = ?", *status)
		countQuery = countQuery.Where("status = ?", *status)
	}

	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("举报列表：计数查询失败", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return reports, 0, nil
	}

	err := query.Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	if err != nil {
		r.logger.Error("举报列表：列表查询失败", zap.Error(err))
		return nil, 0, err
	}
	return reports, totalCount, nil
}

// MarkReviewed 实现举报复审的条件更新。
func (r *reportRepository) MarkReviewed(ctx context.Context, db *gorm.DB, id uint64, reviewedBy uint64, reviewedAt time.Time) (bool, error) {
	result := db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("id = ? AND status = ?", id, enums.ReportPending).
		Updates(map[string]interface{}{
			"status":      enums.ReportReviewed,
			"reviewed_by": reviewedBy,
			"reviewed_at": reviewedAt,
		})
	if result.Error != nil {
		r.logger.Error("标记举报已复审失败", zap.Uint64("reportID", id), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteReportsByBlogID 实现举报的级联物理删除。
func (r *reportRepository) DeleteReportsByBlogID(ctx context.Context, db *gorm.DB, blogID uint64) error {
	return db.WithContext(ctx).Unscoped().
		Where("blog_id = ?", blogID).
		Delete(&entities.Report{}).Error
}
