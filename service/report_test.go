package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func newReportService(t *testing.T, db *gorm.DB) ReportService {
	t.Helper()
	logger := newTestLogger(t)
	return NewReportService(
		db,
		mysql.NewBlogRepository(db, logger),
		mysql.NewReportRepository(db, logger),
		logger,
	)
}

func TestCreateReport_DuplicateFromSameUserRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(t, db)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	report, err := svc.CreateReport(ctx, blog.ID, "user-1", &dto.CreateReportRequest{Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, enums.ReportPending.String(), report.Status)

	// 去重由数据库唯一约束裁决
	_, err = svc.CreateReport(ctx, blog.ID, "user-1", &dto.CreateReportRequest{Reason: "abuse"})
	assert.ErrorIs(t, err, myErrors.ErrAlreadyReported)

	// 其他用户仍可举报同一博客
	_, err = svc.CreateReport(ctx, blog.ID, "user-2", &dto.CreateReportRequest{Reason: "spam"})
	assert.NoError(t, err)
}

func TestCreateReport_RemovedBlogRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newReportService(t, db)

	blog := createTestBlog(t, db, "author-1", enums.VisibilityRemoved, true)

	_, err := svc.CreateReport(context.Background(), blog.ID, "user-1", &dto.CreateReportRequest{Reason: "spam"})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}
