package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// AdminService 定义了管理端的业务逻辑接口。
// - 所有改变目标状态的操作都在同一事务中追加操作日志，
//   操作生效则必有日志，事务回滚则二者都不存在。
type AdminService interface {
	// Login 管理员登录，签发 {id, type: "admin"} 的 JWT。
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*vo.AdminAuthResultVO, error)

	// ListBlogs 管理端分页查询博客，可按可见性筛选。
	ListBlogs(ctx context.Context, query *dto.ListBlogsAdminQuery) (*vo.BlogListVO, error)

	// RemoveBlog 下架博客 (active -> removed)。
	// - 博客已处于 removed 时返回 myErrors.ErrAlreadyInTargetState。
	// - 提交后同步清扫列表与详情缓存。
	RemoveBlog(ctx context.Context, blogID uint64, adminID uint64, reason string) error

	// RestoreBlog 恢复博客 (removed -> active)，同状态迁移返回冲突。
	RestoreBlog(ctx context.Context, blogID uint64, adminID uint64) error

	// DeleteBlog 管理端永久删除博客，级联清理评论/举报/互动记录。
	DeleteBlog(ctx context.Context, blogID uint64, adminID uint64) error

	// ListReports 分页查询举报列表，可按状态筛选。
	ListReports(ctx context.Context, query *dto.ListReportsQuery) (*vo.ReportListVO, error)

	// ReviewReport 将举报标记为已复审。
	// - 重复复审返回 myErrors.ErrAlreadyReviewed。
	ReviewReport(ctx context.Context, reportID uint64, adminID uint64) (*vo.ReportVO, error)

	// ListUsers 管理端分页查询用户，可按用户名/邮箱模糊筛选。
	ListUsers(ctx context.Context, query *dto.ListUsersQuery) (*vo.UserListVO, error)

	// GetUser 管理端查询单个用户。
	GetUser(ctx context.Context, userID string) (*vo.AdminUserVO, error)

	// ListComments 管理端全量分页查询评论。
	ListComments(ctx context.Context, page *dto.PaginationQuery) ([]*vo.CommentVO, int64, error)

	// DeleteComment 管理端删除评论及其整棵回复子树。
	DeleteComment(ctx context.Context, commentID uint64, adminID uint64) error

	// BanUser 封禁用户。已封禁时返回 myErrors.ErrAlreadyInTargetState。
	BanUser(ctx context.Context, userID string, adminID uint64, reason string) error

	// UnbanUser 解除封禁。未封禁时返回 myErrors.ErrAlreadyInTargetState。
	UnbanUser(ctx context.Context, userID string, adminID uint64) error

	// DeleteUser 删除用户账号，级联删除其资料。
	DeleteUser(ctx context.Context, userID string, adminID uint64) error

	// ListActionLogs 分页查询管理操作日志。
	ListActionLogs(ctx context.Context, page *dto.PaginationQuery) (*vo.ActionLogListVO, error)

	// GetStats 查询管理端统计面板数据。
	GetStats(ctx context.Context) (*vo.AdminStatsVO, error)
}

type adminService struct {
	db            *gorm.DB
	adminRepo     mysql.AdminRepository
	userRepo      mysql.UserRepository
	blogRepo      mysql.BlogRepository
	blogAdminRepo mysql.BlogAdminRepository
	commentRepo   mysql.CommentRepository
	reportRepo    mysql.ReportRepository
	engageRepo    mysql.EngagementRepository
	profileRepo   mysql.ProfileRepository
	actionLogRepo mysql.ActionLogRepository
	cache         redis.Cache
	kafkaSvc      *producer.KafkaProducer
	jwtCfg        config.JWTConfig
	logger        *core.ZapLogger
}

// NewAdminService 是 adminService 的构造函数。
func NewAdminService(
	db *gorm.DB,
	adminRepo mysql.AdminRepository,
	userRepo mysql.UserRepository,
	blogRepo mysql.BlogRepository,
	blogAdminRepo mysql.BlogAdminRepository,
	commentRepo mysql.CommentRepository,
	reportRepo mysql.ReportRepository,
	engageRepo mysql.EngagementRepository,
	profileRepo mysql.ProfileRepository,
	actionLogRepo mysql.ActionLogRepository,
	cache redis.Cache,
	kafkaSvc *producer.KafkaProducer,
	jwtCfg config.JWTConfig,
	logger *core.ZapLogger,
) AdminService {
	return &adminService{
		db:            db,
		adminRepo:     adminRepo,
		userRepo:      userRepo,
		blogRepo:      blogRepo,
		blogAdminRepo: blogAdminRepo,
		commentRepo:   commentRepo,
		reportRepo:    reportRepo,
		engageRepo:    engageRepo,
		profileRepo:   profileRepo,
		actionLogRepo: actionLogRepo,
		cache:         cache,
		kafkaSvc:      kafkaSvc,
		jwtCfg:        jwtCfg,
		logger:        logger,
	}
}

// invalidateBlogCaches 管理操作提交后同步清扫博客缓存。
func (s *adminService) invalidateBlogCaches(ctx context.Context, blogID uint64) {
	s.cache.DeleteByPattern(ctx, constant.BlogListInvalidatePattern)
	s.cache.Delete(ctx, fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blogID))
}

// publishModerationEvent 异步发布管理操作事件。
func (s *adminService) publishModerationEvent(adminID uint64, action enums.AdminAction, targetType enums.TargetType, targetID string, reason string) {
	go func() {
		if err := s.kafkaSvc.SendModerationActionEvent(context.Background(), adminID, string(action), string(targetType), targetID, reason); err != nil {
			s.logger.Error("发送管理操作事件失败",
				zap.String("action", string(action)),
				zap.String("targetID", targetID),
				zap.Error(err),
			)
		}
	}()
}

// Login 实现管理员登录。
func (s *adminService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*vo.AdminAuthResultVO, error) {
	admin, err := s.adminRepo.GetAdminByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, myErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, myErrors.ErrInvalidCredentials
	}

	token, err := GenerateToken(s.jwtCfg.Secret, strconv.FormatUint(admin.ID, 10), "admin")
	if err != nil {
		s.logger.Error("签发管理员令牌失败", zap.Uint64("adminID", admin.ID), zap.Error(err))
		return nil, err
	}

	return &vo.AdminAuthResultVO{Token: token, Admin: vo.MapAdminToVO(admin)}, nil
}

// ListBlogs 实现管理端博客列表查询。
func (s *adminService) ListBlogs(ctx context.Context, query *dto.ListBlogsAdminQuery) (*vo.BlogListVO, error) {
	var visibility *enums.Visibility
	if query.Visibility != nil {
		v := enums.Visibility(*query.Visibility)
		visibility = &v
	}

	blogs, total, err := s.blogAdminRepo.ListAllBlogs(ctx, visibility, query.Offset(), query.Limit())
	if err != nil {
		return nil, err
	}
	return &vo.BlogListVO{
		Blogs:    vo.MapBlogsToVOs(blogs),
		Total:    total,
		Page:     query.Offset()/query.Limit() + 1,
		PageSize: query.Limit(),
	}, nil
}

// setBlogVisibility 执行可见性状态机迁移，与操作日志在同一事务中提交。
func (s *adminService) setBlogVisibility(ctx context.Context, blogID uint64, adminID uint64, target enums.Visibility, action enums.AdminAction, reason string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 行锁读取当前状态，并发迁移串行化。
		blog, repoErr := s.blogAdminRepo.GetBlogForUpdate(ctx, tx, blogID)
		if repoErr != nil {
			return repoErr
		}
		if blog.Visibility == target {
			return myErrors.ErrAlreadyInTargetState
		}

		var removedAt *time.Time
		var removedBy *uint64
		if target == enums.VisibilityRemoved {
			now := time.Now()
			removedAt = &now
			removedBy = &adminID
		}
		if repoErr := s.blogAdminRepo.SetVisibility(ctx, tx, blogID, target, removedAt, removedBy); repoErr != nil {
			return repoErr
		}

		meta := map[string]any{}
		if reason != "" {
			meta["reason"] = reason
		}
		return s.actionLogRepo.AppendLog(ctx, tx, &entities.AdminActionLog{
			AdminID:    adminID,
			Action:     action,
			TargetType: enums.TargetBlog,
			TargetID:   strconv.FormatUint(blogID, 10),
			Meta:       meta,
		})
	})
	if err != nil {
		return err
	}

	// 状态迁移改变了公开列表与详情的内容，同步清扫缓存。
	s.invalidateBlogCaches(ctx, blogID)
	s.publishModerationEvent(adminID, action, enums.TargetBlog, strconv.FormatUint(blogID, 10), reason)
	return nil
}

// RemoveBlog 实现博客下架。
func (s *adminService) RemoveBlog(ctx context.Context, blogID uint64, adminID uint64, reason string) error {
	return s.setBlogVisibility(ctx, blogID, adminID, enums.VisibilityRemoved, enums.ActionBlogRemoved, reason)
}

// RestoreBlog 实现博客恢复。
func (s *adminService) RestoreBlog(ctx context.Context, blogID uint64, adminID uint64) error {
	return s.setBlogVisibility(ctx, blogID, adminID, enums.VisibilityActive, enums.ActionBlogRestored, "")
}

// DeleteBlog 实现管理端的博客永久删除。
func (s *adminService) DeleteBlog(ctx context.Context, blogID uint64, adminID uint64) error {
	if _, err := s.blogRepo.GetBlogByID(ctx, blogID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs, repoErr := s.commentRepo.ListCommentIDsByBlogID(ctx, tx, blogID)
		if repoErr != nil {
			return fmt.Errorf("查询博客评论失败: %w", repoErr)
		}
		if repoErr := s.engageRepo.DeleteCommentLikesByCommentIDs(ctx, tx, commentIDs); repoErr != nil {
			return fmt.Errorf("删除评论点赞记录失败: %w", repoErr)
		}
		if repoErr := s.commentRepo.DeleteCommentsByBlogID(ctx, tx, blogID); repoErr != nil {
			return fmt.Errorf("删除博客评论失败: %w", repoErr)
		}
		if repoErr := s.reportRepo.DeleteReportsByBlogID(ctx, tx, blogID); repoErr != nil {
			return fmt.Errorf("删除博客举报记录失败: %w", repoErr)
		}
		if repoErr := s.engageRepo.DeleteByBlogID(ctx, tx, blogID); repoErr != nil {
			return fmt.Errorf("删除博客互动记录失败: %w", repoErr)
		}
		if repoErr := s.blogRepo.HardDeleteBlog(ctx, tx, blogID); repoErr != nil {
			return fmt.Errorf("删除博客主记录失败: %w", repoErr)
		}

		return s.actionLogRepo.AppendLog(ctx, tx, &entities.AdminActionLog{
			AdminID:    adminID,
			Action:     enums.ActionBlogDeleted,
			TargetType: enums.TargetBlog,
			TargetID:   strconv.FormatUint(blogID, 10),
		})
	})
	if err != nil {
		s.logger.Error("管理端删除博客事务失败", zap.Uint64("blogID", blogID), zap.Error(err))
		return err
	}

	s.invalidateBlogCaches(ctx, blogID)
	s.publishModerationEvent(adminID, enums.ActionBlogDeleted, enums.TargetBlog, strconv.FormatUint(blogID, 10), "")
	return nil
}

// ListReports 实现举报列表查询。
func (s *adminService) ListReports(ctx context.Context, query *dto.ListReportsQuery) (*vo.ReportListVO, error) {
	var status *enums.ReportStatus
	if query.Status != nil {
		st := enums.ReportStatus(*query.Status)
		status = &st
	}

	reports, total, err := s.reportRepo.ListReports(ctx, status, query.Offset(), query.Limit())
	if err != nil {
		return nil, err
	}
	return &vo.ReportListVO{
		Reports: vo.MapReportsToVOs(reports),
		Total:   total,
	}, nil
}

// ReviewReport 实现举报复审。
func (s *adminService) ReviewReport(ctx context.Context, reportID uint64, adminID uint64) (*vo.ReportVO, error) {
	report, err := s.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status == enums.ReportReviewed {
		return nil, myErrors.ErrAlreadyReviewed
	}

	reviewedAt := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 条件更新限定 status = pending，并发复审只有一个请求命中行。
		updated, repoErr := s.reportRepo.MarkReviewed(ctx, tx, reportID, adminID, reviewedAt)
		if repoErr != nil {
			return repoErr
		}
		if !updated {
			return myErrors.ErrAlreadyReviewed
		}

		return s.actionLogRepo.AppendLog(ctx, tx, &entities.AdminActionLog{
			AdminID:    adminID,
			Action:     enums.ActionReportReviewed,
			TargetType: enums.TargetReport,
			TargetID:   strconv.FormatUint(reportID, 10),
		})
	})
	if err != nil {
		return nil, err
	}

	report.Status = enums.ReportReviewed
	report.ReviewedBy = &adminID
	report.ReviewedAt = &reviewedAt
	return vo.MapReportToVO(report), nil
}

// ListUsers 实现管理端用户列表查询。
func (s *adminService) ListUsers(ctx context.Context, query *dto.ListUsersQuery) (*vo.UserListVO, error) {
	users, total, err := s.userRepo.ListUsers(ctx, query.Search, query.Offset(), query.Limit())
	if err != nil {
		return nil, err
	}
	return &vo.UserListVO{
		Users: vo.MapUsersToAdminVOs(users),
		Total: total,
	}, nil
}

// GetUser 实现管理端单用户查询。
func (s *adminService) GetUser(ctx context.Context, userID string) (*vo.AdminUserVO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return vo.MapUserToAdminVO(user), nil
}

// ListComments 实现管理端全量评论查询。
func (s *adminService) ListComments(ctx context.Context, page *dto.PaginationQuery) ([]*vo.CommentVO, int64, error) {
	comments, total, err := s.commentRepo.ListAllComments(ctx, page.Offset(), page.Limit())
	if err != nil {
		return nil, 0, err
	}
	vos := make([]*vo.CommentVO, 0, len(comments))
	for _, c := range comments {
		vos = append(vos, vo.MapCommentToVO(c))
	}
	return vos, total, nil
}

// DeleteComment 实现管理端的评论子树删除。
func (s *adminService) DeleteComment(ctx context.Context, commentID uint64, adminID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	// 子树收集与删除在同一事务中执行。
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, repoErr := s.commentRepo.CollectSubtreeIDs(ctx, tx, commentID)
		if repoErr != nil {
			return repoErr
		}
		if repoErr := s.engageRepo.DeleteCommentLikesByCommentIDs(ctx, tx, ids); repoErr != nil {
			return fmt.Errorf("删除评论点赞记录失败: %w", repoErr)
		}
		if repoErr := s.commentRepo.DeleteCommentsByIDs(ctx, tx, ids); repoErr != nil {
			return fmt.Errorf("删除评论子树失败: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("管理端删除评论事务失败", zap.Uint64("commentID", commentID), zap.Error(err))
		return err
	}

	// 评论计数嵌在所属博客的详情缓存里，同步删除。
	s.cache.Delete(ctx, fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, comment.BlogID))
	return nil
}

// setUserBanned 执行封禁状态迁移，与操作日志在同一事务中提交。
func (s *adminService) setUserBanned(ctx context.Context, userID string, adminID uint64, banned bool, action enums.AdminAction, reason string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsBanned == banned {
		return myErrors.ErrAlreadyInTargetState
	}

	var bannedAt *time.Time
	var reasonPtr *string
	if banned {
		now := time.Now()
		bannedAt = &now
		if reason != "" {
			reasonPtr = &reason
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if repoErr := s.userRepo.SetBanned(ctx, tx, userID, banned, bannedAt, reasonPtr); repoErr != nil {
			return repoErr
		}

		meta := map[string]any{}
		if reason != "" {
			meta["reason"] = reason
		}
		return s.actionLogRepo.AppendLog(ctx, tx, &entities.AdminActionLog{
			AdminID:    adminID,
			Action:     action,
			TargetType: enums.TargetUser,
			TargetID:   userID,
			Meta:       meta,
		})
	})
	if err != nil {
		return err
	}

	s.publishModerationEvent(adminID, action, enums.TargetUser, userID, reason)
	return nil
}

// BanUser 实现用户封禁。
func (s *adminService) BanUser(ctx context.Context, userID string, adminID uint64, reason string) error {
	return s.setUserBanned(ctx, userID, adminID, true, enums.ActionUserBanned, reason)
}

// UnbanUser 实现解除封禁。
func (s *adminService) UnbanUser(ctx context.Context, userID string, adminID uint64) error {
	return s.setUserBanned(ctx, userID, adminID, false, enums.ActionUserUnbanned, "")
}

// DeleteUser 实现管理端删除用户账号。
func (s *adminService) DeleteUser(ctx context.Context, userID string, adminID uint64) error {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 资料随账号一起删除；博客与评论保留，由内容侧的删除流程单独处理。
		if repoErr := s.profileRepo.DeleteProfileByUserID(ctx, tx, userID); repoErr != nil {
			return fmt.Errorf("删除用户资料失败: %w", repoErr)
		}
		if repoErr := s.userRepo.DeleteUser(ctx, tx, userID); repoErr != nil {
			return fmt.Errorf("删除用户账号失败: %w", repoErr)
		}

		return s.actionLogRepo.AppendLog(ctx, tx, &entities.AdminActionLog{
			AdminID:    adminID,
			Action:     enums.ActionUserDeleted,
			TargetType: enums.TargetUser,
			TargetID:   userID,
		})
	})
	if err != nil {
		s.logger.Error("管理端删除用户事务失败", zap.String("userID", userID), zap.Error(err))
		return err
	}

	s.publishModerationEvent(adminID, enums.ActionUserDeleted, enums.TargetUser, userID, "")
	return nil
}

// ListActionLogs 实现操作日志查询。
func (s *adminService) ListActionLogs(ctx context.Context, page *dto.PaginationQuery) (*vo.ActionLogListVO, error) {
	logs, total, err := s.actionLogRepo.ListLogs(ctx, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}
	return &vo.ActionLogListVO{
		Logs:  vo.MapActionLogsToVOs(logs),
		Total: total,
	}, nil
}

// GetStats 实现统计面板查询。
func (s *adminService) GetStats(ctx context.Context) (*vo.AdminStatsVO, error) {
	total, err := s.blogAdminRepo.CountBlogs(ctx, nil)
	if err != nil {
		return nil, err
	}
	active := enums.VisibilityActive
	activeCount, err := s.blogAdminRepo.CountBlogs(ctx, &active)
	if err != nil {
		return nil, err
	}
	removed := enums.VisibilityRemoved
	removedCount, err := s.blogAdminRepo.CountBlogs(ctx, &removed)
	if err != nil {
		return nil, err
	}

	pending := enums.ReportPending
	_, pendingCount, err := s.reportRepo.ListReports(ctx, &pending, 0, 1)
	if err != nil {
		return nil, err
	}

	return &vo.AdminStatsVO{
		TotalBlogs:     total,
		ActiveBlogs:    activeCount,
		RemovedBlogs:   removedCount,
		PendingReports: pendingCount,
	}, nil
}
