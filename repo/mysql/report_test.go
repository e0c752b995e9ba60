package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func TestCreateReport_DuplicateReturnsAlreadyReported(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db, newTestLogger(t))
	ctx := context.Background()

	first := &entities.Report{BlogID: 1, ReporterID: "user-1", Reason: enums.ReasonSpam}
	require.NoError(t, repo.CreateReport(ctx, first))

	// 同一 (blog_id, reporter_id) 的第二次举报由唯一索引裁决
	dup := &entities.Report{BlogID: 1, ReporterID: "user-1", Reason: enums.ReasonAbuse}
	err := repo.CreateReport(ctx, dup)
	assert.ErrorIs(t, err, myErrors.ErrAlreadyReported)

	// 其他用户举报同一博客、同一用户举报其他博客都不受影响
	assert.NoError(t, repo.CreateReport(ctx, &entities.Report{BlogID: 1, ReporterID: "user-2", Reason: enums.ReasonSpam}))
	assert.NoError(t, repo.CreateReport(ctx, &entities.Report{BlogID: 2, ReporterID: "user-1", Reason: enums.ReasonSpam}))
}

func TestMarkReviewed_OnlyFirstReviewerWins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db, newTestLogger(t))
	ctx := context.Background()

	report := &entities.Report{BlogID: 1, ReporterID: "user-1", Reason: enums.ReasonSpam}
	require.NoError(t, repo.CreateReport(ctx, report))

	updated, err := repo.MarkReviewed(ctx, db, report.ID, 10, time.Now())
	require.NoError(t, err)
	assert.True(t, updated)

	// 条件更新限定 status = pending，二次复审不命中任何行
	updated, err = repo.MarkReviewed(ctx, db, report.ID, 11, time.Now())
	require.NoError(t, err)
	assert.False(t, updated)

	stored, err := repo.GetReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReportReviewed, stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, uint64(10), *stored.ReviewedBy)
}

func TestListReports_FilterByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db, newTestLogger(t))
	ctx := context.Background()

	r1 := &entities.Report{BlogID: 1, ReporterID: "user-1", Reason: enums.ReasonSpam}
	r2 := &entities.Report{BlogID: 2, ReporterID: "user-1", Reason: enums.ReasonSpam}
	require.NoError(t, repo.CreateReport(ctx, r1))
	require.NoError(t, repo.CreateReport(ctx, r2))

	_, err := repo.MarkReviewed(ctx, db, r1.ID, 10, time.Now())
	require.NoError(t, err)

	pending := enums.ReportPending
	reports, total, err := repo.ListReports(ctx, &pending, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reports, 1)
	assert.Equal(t, r2.ID, reports[0].ID)

	all, total, err := repo.ListReports(ctx, nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
