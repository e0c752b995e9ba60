package service

import (
	"context"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// ReportService 定义了举报提交侧的业务逻辑接口。
type ReportService interface {
	// CreateReport 提交对博客的举报。
	// - 同一用户对同一博客重复举报返回 myErrors.ErrAlreadyReported，
	//   去重由数据库唯一约束裁决，并发下也只有一条胜出。
	CreateReport(ctx context.Context, blogID uint64, reporterID string, req *dto.CreateReportRequest) (*vo.ReportVO, error)
}

type reportService struct {
	db         *gorm.DB
	blogRepo   mysql.BlogRepository
	reportRepo mysql.ReportRepository
	logger     *core.ZapLogger
}

// NewReportService 是 reportService 的构造函数。
func NewReportService(db *gorm.DB, blogRepo mysql.BlogRepository, reportRepo mysql.ReportRepository, logger *core.ZapLogger) ReportService {
	return &reportService{
		db:         db,
		blogRepo:   blogRepo,
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// CreateReport 实现举报提交。
func (s *reportService) CreateReport(ctx context.Context, blogID uint64, reporterID string, req *dto.CreateReportRequest) (*vo.ReportVO, error) {
	blog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	// 已下架的博客对公众不可见，也不再接受举报。
	if blog.Visibility != enums.VisibilityActive {
		return nil, commonerrors.ErrRepoNotFound
	}

	report := &entities.Report{
		BlogID:     blogID,
		ReporterID: reporterID,
		Reason:     enums.ReportReason(req.Reason),
		Message:    req.Message,
		Status:     enums.ReportPending,
	}
	if err := s.reportRepo.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("收到博客举报",
		zap.Uint64("blogID", blogID),
		zap.String("reporterID", reporterID),
		zap.String("reason", req.Reason),
	)
	return vo.MapReportToVO(report), nil
}
