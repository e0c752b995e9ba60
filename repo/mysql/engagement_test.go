package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogLike_IdempotentAddAndRemove(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db, newTestLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.AddBlogLike(ctx, db, 1, "user-1"))
	// 重复点赞是幂等的空操作
	require.NoError(t, repo.AddBlogLike(ctx, db, 1, "user-1"))

	count, err := repo.CountBlogLikes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	has, err := repo.HasBlogLike(ctx, 1, "user-1")
	require.NoError(t, err)
	assert.True(t, has)

	removed, err := repo.RemoveBlogLike(ctx, db, 1, "user-1")
	require.NoError(t, err)
	assert.True(t, removed)

	// 再次删除没有命中行
	removed, err = repo.RemoveBlogLike(ctx, db, 1, "user-1")
	require.NoError(t, err)
	assert.False(t, removed)

	count, err = repo.CountBlogLikes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestBookmark_ListPreservesMembership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db, newTestLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.AddBookmark(ctx, db, 1, "user-1"))
	require.NoError(t, repo.AddBookmark(ctx, db, 2, "user-1"))
	require.NoError(t, repo.AddBookmark(ctx, db, 3, "user-2"))

	ids, err := repo.ListBookmarkedBlogIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{1, 2}, ids)
}

func TestFollow_CountsBothDirections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db, newTestLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.AddFollow(ctx, db, "user-1", "user-2"))
	require.NoError(t, repo.AddFollow(ctx, db, "user-3", "user-2"))
	require.NoError(t, repo.AddFollow(ctx, db, "user-2", "user-1"))

	followers, err := repo.CountFollowers(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := repo.CountFollowing(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)

	has, err := repo.HasFollow(ctx, "user-1", "user-2")
	require.NoError(t, err)
	assert.True(t, has)

	removed, err := repo.RemoveFollow(ctx, db, "user-1", "user-2")
	require.NoError(t, err)
	assert.True(t, removed)

	followers, err = repo.CountFollowers(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)
}

func TestDeleteByBlogID_CascadesAllEngagement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db, newTestLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.AddBlogLike(ctx, db, 1, "user-1"))
	require.NoError(t, repo.AddBlogDislike(ctx, db, 1, "user-2"))
	require.NoError(t, repo.AddBookmark(ctx, db, 1, "user-3"))
	require.NoError(t, repo.AddBlogLike(ctx, db, 2, "user-1"))

	require.NoError(t, repo.DeleteByBlogID(ctx, db, 1))

	likes, err := repo.CountBlogLikes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)

	dislikes, err := repo.CountBlogDislikes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dislikes)

	has, err := repo.HasBookmark(ctx, 1, "user-3")
	require.NoError(t, err)
	assert.False(t, has)

	// 其他博客的互动记录不受影响
	likes, err = repo.CountBlogLikes(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
}
