package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func newEngagementService(t *testing.T, db *gorm.DB, cache *fakeCache) (EngagementService, mysql.EngagementRepository) {
	t.Helper()
	logger := newTestLogger(t)
	engageRepo := mysql.NewEngagementRepository(db, logger)
	svc := NewEngagementService(
		db,
		mysql.NewBlogRepository(db, logger),
		mysql.NewCommentRepository(db, logger),
		engageRepo,
		mysql.NewBlogBatchOperationsRepository(db, logger, config.ViewSyncConfig{}),
		cache,
		logger,
	)
	return svc, engageRepo
}

func TestToggleBlogLike_SecondToggleRemoves(t *testing.T) {
	db := setupTestDB(t)
	svc, engageRepo := newEngagementService(t, db, newFakeCache())
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	liked, err := svc.ToggleBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, liked)

	has, err := engageRepo.HasBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, has)

	// 再次切换解除点赞
	liked, err = svc.ToggleBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, liked)

	has, err = engageRepo.HasBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestToggleBlogLike_ClearsDislike(t *testing.T) {
	db := setupTestDB(t)
	svc, engageRepo := newEngagementService(t, db, newFakeCache())
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	disliked, err := svc.ToggleBlogDislike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	require.True(t, disliked)

	liked, err := svc.ToggleBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	require.True(t, liked)

	// 点赞与点踩互斥，点赞后点踩被清除
	hasLike, err := engageRepo.HasBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, hasLike)

	hasDislike, err := engageRepo.HasBlogDislike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, hasDislike)
}

func TestToggleBlogDislike_ClearsLike(t *testing.T) {
	db := setupTestDB(t)
	svc, engageRepo := newEngagementService(t, db, newFakeCache())
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	_, err := svc.ToggleBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	_, err = svc.ToggleBlogDislike(ctx, blog.ID, "user-1")
	require.NoError(t, err)

	hasLike, err := engageRepo.HasBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, hasLike)

	hasDislike, err := engageRepo.HasBlogDislike(ctx, blog.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, hasDislike)
}

func TestToggleBlogLike_RemovedBlogRejected(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newEngagementService(t, db, newFakeCache())

	blog := createTestBlog(t, db, "author-1", enums.VisibilityRemoved, true)

	_, err := svc.ToggleBlogLike(context.Background(), blog.ID, "user-1")
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestToggleBlogLike_RefreshesDetailCounts(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc, _ := newEngagementService(t, db, cache)
	blogSvc := newBlogService(t, db, cache)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	// 预热详情缓存，此时点赞数为 0
	before, err := blogSvc.GetBlogByID(ctx, blog.ID, "viewer-1", false)
	require.NoError(t, err)
	require.Equal(t, int64(0), before.LikeCount)

	_, err = svc.ToggleBlogLike(ctx, blog.ID, "user-1")
	require.NoError(t, err)

	// 互动提交后详情缓存被删除，TTL 内的读取看到新计数
	after, err := blogSvc.GetBlogByID(ctx, blog.ID, "viewer-1", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.LikeCount)
}

func TestToggleBookmark_ListFiltersRemovedBlogs(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newEngagementService(t, db, newFakeCache())
	ctx := context.Background()

	active := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	removed := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	bookmarked, err := svc.ToggleBookmark(ctx, active.ID, "user-1")
	require.NoError(t, err)
	require.True(t, bookmarked)
	_, err = svc.ToggleBookmark(ctx, removed.ID, "user-1")
	require.NoError(t, err)

	// 收藏后被下架的博客不再出现在收藏列表中
	require.NoError(t, db.Model(removed).Update("visibility", enums.VisibilityRemoved).Error)

	list, err := svc.ListBookmarks(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Blogs, 1)
	assert.Equal(t, active.ID, list.Blogs[0].ID)
}

func TestToggleCommentLike_RequiresExistingComment(t *testing.T) {
	db := setupTestDB(t)
	svc, engageRepo := newEngagementService(t, db, newFakeCache())
	ctx := context.Background()

	_, err := svc.ToggleCommentLike(ctx, 999, "user-1")
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	commentSvc := newCommentService(t, db, newFakeCache())
	comment, err := commentSvc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "评论"})
	require.NoError(t, err)

	liked, err := svc.ToggleCommentLike(ctx, comment.ID, "user-2")
	require.NoError(t, err)
	assert.True(t, liked)
	count, err := engageRepo.CountCommentLikes(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	liked, err = svc.ToggleCommentLike(ctx, comment.ID, "user-2")
	require.NoError(t, err)
	assert.False(t, liked)
	count, err = engageRepo.CountCommentLikes(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
