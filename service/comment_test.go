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

func newCommentService(t *testing.T, db *gorm.DB, cache *fakeCache) CommentService {
	t.Helper()
	logger := newTestLogger(t)
	return NewCommentService(
		db,
		mysql.NewBlogRepository(db, logger),
		mysql.NewCommentRepository(db, logger),
		mysql.NewEngagementRepository(db, logger),
		cache,
		logger,
	)
}

func TestCreateComment_OnActiveBlog(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(t, db, newFakeCache())
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	comment, err := svc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "不错的文章"})
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Equal(t, "user-1", comment.AuthorID)
	assert.Equal(t, "不错的文章", comment.Content)
}

func TestCreateComment_RemovedBlogLooksLikeNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(t, db, newFakeCache())

	blog := createTestBlog(t, db, "author-1", enums.VisibilityRemoved, true)

	_, err := svc.CreateComment(context.Background(), blog.ID, "user-1", &dto.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestCreateComment_CommentsDisabled(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(t, db, newFakeCache())

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, false)

	_, err := svc.CreateComment(context.Background(), blog.ID, "user-1", &dto.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, myErrors.ErrCommentsDisabled)
}

func TestCreateComment_ParentFromAnotherBlogRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(t, db, newFakeCache())
	ctx := context.Background()

	blogA := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	blogB := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	parent, err := svc.CreateComment(ctx, blogA.ID, "user-1", &dto.CreateCommentRequest{Content: "父评论"})
	require.NoError(t, err)

	// 回复必须挂在同一博客的评论下
	_, err = svc.CreateComment(ctx, blogB.ID, "user-2", &dto.CreateCommentRequest{Content: "跨博客回复", ParentID: &parent.ID})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestReplyToComment_InheritsBlogFromParent(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(t, db, newFakeCache())
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	parent, err := svc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "父评论"})
	require.NoError(t, err)

	reply, err := svc.ReplyToComment(ctx, parent.ID, "user-2", "回复内容")
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	list, err := svc.ListComments(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Comments, 1)
	require.Len(t, list.Comments[0].Replies, 1)
	assert.Equal(t, reply.ID, list.Comments[0].Replies[0].ID)
}

func TestUpdateComment_OnlyAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(t, db, newFakeCache())
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	comment, err := svc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "原始内容"})
	require.NoError(t, err)

	_, err = svc.UpdateComment(ctx, comment.ID, "user-2", &dto.UpdateCommentRequest{Content: "篡改"})
	assert.ErrorIs(t, err, myErrors.ErrForbidden)

	updated, err := svc.UpdateComment(ctx, comment.ID, "user-1", &dto.UpdateCommentRequest{Content: "修改后的内容"})
	require.NoError(t, err)
	assert.Equal(t, "修改后的内容", updated.Content)
}

func TestDeleteComment_RemovesSubtreeAndLikes(t *testing.T) {
	db := setupTestDB(t)
	logger := newTestLogger(t)
	svc := newCommentService(t, db, newFakeCache())
	engageRepo := mysql.NewEngagementRepository(db, logger)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	root, err := svc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "根"})
	require.NoError(t, err)
	child, err := svc.CreateComment(ctx, blog.ID, "user-2", &dto.CreateCommentRequest{Content: "子", ParentID: &root.ID})
	require.NoError(t, err)
	grandChild, err := svc.CreateComment(ctx, blog.ID, "user-3", &dto.CreateCommentRequest{Content: "孙", ParentID: &child.ID})
	require.NoError(t, err)
	sibling, err := svc.CreateComment(ctx, blog.ID, "user-4", &dto.CreateCommentRequest{Content: "无关"})
	require.NoError(t, err)

	require.NoError(t, engageRepo.AddCommentLike(ctx, db, grandChild.ID, "user-9"))

	require.NoError(t, svc.DeleteComment(ctx, root.ID, "user-1"))

	list, err := svc.ListComments(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Comments, 1)
	assert.Equal(t, sibling.ID, list.Comments[0].ID)

	// 子树的点赞记录随评论一起删除
	likes, err := engageRepo.CountCommentLikes(ctx, grandChild.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)
}

func TestDeleteComment_BlogOwnerMayDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(t, db, newFakeCache())
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	comment, err := svc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "评论"})
	require.NoError(t, err)

	// 无关第三方无权删除
	err = svc.DeleteComment(ctx, comment.ID, "user-2")
	assert.ErrorIs(t, err, myErrors.ErrForbidden)

	// 博客作者可以删除他人评论
	require.NoError(t, svc.DeleteComment(ctx, comment.ID, "author-1"))
}

func TestCommentMutations_RefreshDetailCount(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newCommentService(t, db, cache)
	blogSvc := newBlogService(t, db, cache)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	// 预热详情缓存，此时评论数为 0
	before, err := blogSvc.GetBlogByID(ctx, blog.ID, "viewer-1", false)
	require.NoError(t, err)
	require.Equal(t, int64(0), before.CommentCount)

	comment, err := svc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "评论"})
	require.NoError(t, err)

	// 评论提交后详情缓存被删除，读取看到新计数
	after, err := blogSvc.GetBlogByID(ctx, blog.ID, "viewer-1", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.CommentCount)

	require.NoError(t, svc.DeleteComment(ctx, comment.ID, "user-1"))

	final, err := blogSvc.GetBlogByID(ctx, blog.ID, "viewer-1", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), final.CommentCount)
}
