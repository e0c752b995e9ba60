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

func newProfileService(t *testing.T, db *gorm.DB) ProfileService {
	t.Helper()
	logger := newTestLogger(t)
	return NewProfileService(
		db,
		mysql.NewUserRepository(db, logger),
		mysql.NewProfileRepository(db, logger),
		mysql.NewBlogRepository(db, logger),
		mysql.NewEngagementRepository(db, logger),
		logger,
	)
}

func TestToggleFollow_SelfFollowRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(t, db)

	createTestUser(t, db, "user-1")

	_, err := svc.ToggleFollow(context.Background(), "user-1", "user-1")
	assert.ErrorIs(t, err, myErrors.ErrSelfFollow)
}

func TestToggleFollow_UnknownFolloweeRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(t, db)

	createTestUser(t, db, "user-1")

	_, err := svc.ToggleFollow(context.Background(), "user-1", "ghost")
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestToggleFollow_SecondToggleRemoves(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(t, db)
	ctx := context.Background()

	createTestUser(t, db, "user-1")
	createTestUser(t, db, "user-2")

	following, err := svc.ToggleFollow(ctx, "user-1", "user-2")
	require.NoError(t, err)
	assert.True(t, following)

	stats, err := svc.GetFollowStats(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FollowerCount)

	// 再次切换解除关注关系
	following, err = svc.ToggleFollow(ctx, "user-1", "user-2")
	require.NoError(t, err)
	assert.False(t, following)

	stats, err = svc.GetFollowStats(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.FollowerCount)
}

func TestToggleFollow_UpdatesStats(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(t, db)
	ctx := context.Background()

	createTestUser(t, db, "user-1")
	createTestUser(t, db, "user-2")
	createTestUser(t, db, "user-3")

	_, err := svc.ToggleFollow(ctx, "user-1", "user-2")
	require.NoError(t, err)
	_, err = svc.ToggleFollow(ctx, "user-3", "user-2")
	require.NoError(t, err)

	stats, err := svc.GetFollowStats(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.FollowerCount)
	assert.Equal(t, int64(0), stats.FollowingCount)

	// user-1 取关后只剩 user-3
	_, err = svc.ToggleFollow(ctx, "user-1", "user-2")
	require.NoError(t, err)

	stats, err = svc.GetFollowStats(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FollowerCount)
}

func TestGetProfile_FillsCountsAndIsFollowing(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(t, db)
	ctx := context.Background()

	createTestUser(t, db, "user-1")
	createTestUser(t, db, "user-2")
	createTestBlog(t, db, "user-2", enums.VisibilityActive, true)
	createTestBlog(t, db, "user-2", enums.VisibilityActive, true)
	// 已下架的博客不计入博客数
	createTestBlog(t, db, "user-2", enums.VisibilityRemoved, true)

	_, err := svc.ToggleFollow(ctx, "user-1", "user-2")
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, "user-2", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.FollowerCount)
	assert.Equal(t, int64(2), profile.BlogCount)
	assert.True(t, profile.IsFollowing)

	// 未登录访客看不到 IsFollowing
	anon, err := svc.GetProfile(ctx, "user-2", "")
	require.NoError(t, err)
	assert.False(t, anon.IsFollowing)
}

func TestUpdateProfile_UpsertTwice(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(t, db)
	ctx := context.Background()

	createTestUser(t, db, "user-1")

	first, err := svc.UpdateProfile(ctx, "user-1", &dto.UpdateProfileRequest{
		DisplayName: "老王",
		Bio:         "写点东西",
	})
	require.NoError(t, err)
	assert.Equal(t, "老王", first.DisplayName)

	second, err := svc.UpdateProfile(ctx, "user-1", &dto.UpdateProfileRequest{
		DisplayName: "老王二号",
		Location:    "上海",
	})
	require.NoError(t, err)
	assert.Equal(t, "老王二号", second.DisplayName)
	assert.Equal(t, "上海", second.Location)

	// 资料页读到的是覆盖后的版本
	got, err := svc.GetProfile(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "老王二号", got.DisplayName)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(t, db)

	_, err := svc.GetProfile(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}
