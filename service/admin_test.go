package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func newAdminService(t *testing.T, db *gorm.DB, cache *fakeCache) AdminService {
	t.Helper()
	logger := newTestLogger(t)
	return NewAdminService(
		db,
		mysql.NewAdminRepository(db, logger),
		mysql.NewUserRepository(db, logger),
		mysql.NewBlogRepository(db, logger),
		mysql.NewBlogAdminRepository(db, logger),
		mysql.NewCommentRepository(db, logger),
		mysql.NewReportRepository(db, logger),
		mysql.NewEngagementRepository(db, logger),
		mysql.NewProfileRepository(db, logger),
		mysql.NewActionLogRepository(db, logger),
		cache,
		nil, // Kafka 未配置时服务降级为不发事件
		config.JWTConfig{Secret: "test-secret"},
		logger,
	)
}

func createTestAdmin(t *testing.T, db *gorm.DB, username, password string) *entities.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := &entities.Admin{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Permissions: enums.Permissions{
			enums.PermManageUsers,
			enums.PermManageBlogs,
			enums.PermManageComments,
			enums.PermManageReports,
			enums.PermViewLogs,
		},
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func countActionLogs(t *testing.T, db *gorm.DB, action enums.AdminAction, targetID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&entities.AdminActionLog{}).
		Where("action = ? AND target_id = ?", action, targetID).
		Count(&count).Error)
	return count
}

func TestAdminLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(t, db, newFakeCache())
	ctx := context.Background()

	createTestAdmin(t, db, "admin", "secret123!")

	_, err := svc.Login(ctx, &dto.AdminLoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.AdminLoginRequest{Username: "ghost", Password: "secret123!"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidCredentials)

	result, err := svc.Login(ctx, &dto.AdminLoginRequest{Username: "admin", Password: "secret123!"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.Admin.Username)
}

func TestBanUser_StateMachineAndActionLog(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(t, db, newFakeCache())
	ctx := context.Background()

	admin := createTestAdmin(t, db, "admin", "secret123!")
	createTestUser(t, db, "user-1")

	require.NoError(t, svc.BanUser(ctx, "user-1", admin.ID, "发垃圾广告"))

	user, err := mysql.NewUserRepository(db, newTestLogger(t)).GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, user.IsBanned)
	require.NotNil(t, user.BanReason)
	assert.Equal(t, "发垃圾广告", *user.BanReason)

	// 操作生效则必有日志
	assert.Equal(t, int64(1), countActionLogs(t, db, enums.ActionUserBanned, "user-1"))

	// 已封禁的用户再次封禁是同状态迁移
	err = svc.BanUser(ctx, "user-1", admin.ID, "again")
	assert.ErrorIs(t, err, myErrors.ErrAlreadyInTargetState)
	assert.Equal(t, int64(1), countActionLogs(t, db, enums.ActionUserBanned, "user-1"))

	require.NoError(t, svc.UnbanUser(ctx, "user-1", admin.ID))
	user, err = mysql.NewUserRepository(db, newTestLogger(t)).GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, user.IsBanned)
	assert.Nil(t, user.BannedAt)

	// 未封禁状态下解封同样是同状态迁移
	err = svc.UnbanUser(ctx, "user-1", admin.ID)
	assert.ErrorIs(t, err, myErrors.ErrAlreadyInTargetState)
}

func TestReviewReport_SecondReviewRejected(t *testing.T) {
	db := setupTestDB(t)
	logger := newTestLogger(t)
	svc := newAdminService(t, db, newFakeCache())
	reportRepo := mysql.NewReportRepository(db, logger)
	ctx := context.Background()

	admin := createTestAdmin(t, db, "admin", "secret123!")
	report := &entities.Report{BlogID: 1, ReporterID: "user-1", Reason: enums.ReasonSpam}
	require.NoError(t, reportRepo.CreateReport(ctx, report))

	reviewed, err := svc.ReviewReport(ctx, report.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReportReviewed.String(), reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, admin.ID, *reviewed.ReviewedBy)

	targetID := fmt.Sprintf("%d", report.ID)
	assert.Equal(t, int64(1), countActionLogs(t, db, enums.ActionReportReviewed, targetID))

	_, err = svc.ReviewReport(ctx, report.ID, admin.ID)
	assert.ErrorIs(t, err, myErrors.ErrAlreadyReviewed)
	assert.Equal(t, int64(1), countActionLogs(t, db, enums.ActionReportReviewed, targetID))
}

func TestAdminDeleteBlog_CascadesAndInvalidatesCache(t *testing.T) {
	db := setupTestDB(t)
	logger := newTestLogger(t)
	cache := newFakeCache()
	svc := newAdminService(t, db, cache)
	commentRepo := mysql.NewCommentRepository(db, logger)
	engageRepo := mysql.NewEngagementRepository(db, logger)
	reportRepo := mysql.NewReportRepository(db, logger)
	ctx := context.Background()

	admin := createTestAdmin(t, db, "admin", "secret123!")
	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	comment := &entities.Comment{BlogID: blog.ID, AuthorID: "user-1", Content: "评论"}
	require.NoError(t, commentRepo.CreateComment(ctx, db, comment))
	require.NoError(t, engageRepo.AddCommentLike(ctx, db, comment.ID, "user-2"))
	require.NoError(t, engageRepo.AddBlogLike(ctx, db, blog.ID, "user-2"))
	require.NoError(t, reportRepo.CreateReport(ctx, &entities.Report{BlogID: blog.ID, ReporterID: "user-3", Reason: enums.ReasonSpam}))

	detailKey := fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blog.ID)
	cache.Set(ctx, detailKey, "cached", 0)
	cache.Set(ctx, "blogs:somelist", "cached", 0)

	require.NoError(t, svc.DeleteBlog(ctx, blog.ID, admin.ID))

	// 主记录与全部关联数据被级联删除
	var blogCount, commentCount, likeCount, reportCount int64
	require.NoError(t, db.Unscoped().Model(&entities.Blog{}).Where("id = ?", blog.ID).Count(&blogCount).Error)
	require.NoError(t, db.Model(&entities.Comment{}).Where("blog_id = ?", blog.ID).Count(&commentCount).Error)
	require.NoError(t, db.Model(&entities.BlogLike{}).Where("blog_id = ?", blog.ID).Count(&likeCount).Error)
	require.NoError(t, db.Model(&entities.Report{}).Where("blog_id = ?", blog.ID).Count(&reportCount).Error)
	assert.Zero(t, blogCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, likeCount)
	assert.Zero(t, reportCount)

	// 提交后详情缓存与列表缓存被同步清扫
	assert.False(t, cache.contains(detailKey))
	assert.False(t, cache.contains("blogs:somelist"))

	assert.Equal(t, int64(1), countActionLogs(t, db, enums.ActionBlogDeleted, fmt.Sprintf("%d", blog.ID)))
}

func TestAdminDeleteUser_RemovesProfileAndLogs(t *testing.T) {
	db := setupTestDB(t)
	logger := newTestLogger(t)
	svc := newAdminService(t, db, newFakeCache())
	profileRepo := mysql.NewProfileRepository(db, logger)
	ctx := context.Background()

	admin := createTestAdmin(t, db, "admin", "secret123!")
	createTestUser(t, db, "user-1")
	require.NoError(t, profileRepo.UpsertProfile(ctx, &entities.Profile{UserID: "user-1", DisplayName: "老王"}))

	require.NoError(t, svc.DeleteUser(ctx, "user-1", admin.ID))

	_, err := mysql.NewUserRepository(db, logger).GetUserByID(ctx, "user-1")
	assert.Error(t, err)
	_, err = profileRepo.GetProfileByUserID(ctx, "user-1")
	assert.Error(t, err)

	assert.Equal(t, int64(1), countActionLogs(t, db, enums.ActionUserDeleted, "user-1"))
}

func TestGetStats_CountsByStateAndPendingReports(t *testing.T) {
	db := setupTestDB(t)
	logger := newTestLogger(t)
	svc := newAdminService(t, db, newFakeCache())
	reportRepo := mysql.NewReportRepository(db, logger)
	ctx := context.Background()

	createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	createTestBlog(t, db, "author-1", enums.VisibilityRemoved, true)
	require.NoError(t, reportRepo.CreateReport(ctx, &entities.Report{BlogID: 1, ReporterID: "user-1", Reason: enums.ReasonSpam}))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalBlogs)
	assert.Equal(t, int64(2), stats.ActiveBlogs)
	assert.Equal(t, int64(1), stats.RemovedBlogs)
	assert.Equal(t, int64(1), stats.PendingReports)
}
