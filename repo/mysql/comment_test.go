package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

func createTestComment(t *testing.T, repo CommentRepository, db *gorm.DB, blogID uint64, parentID *uint64) *entities.Comment {
	t.Helper()
	comment := &entities.Comment{
		BlogID:   blogID,
		AuthorID: "user-1",
		Content:  "content",
		ParentID: parentID,
	}
	require.NoError(t, repo.CreateComment(context.Background(), db, comment))
	return comment
}

func TestCollectSubtreeIDs_WalksWholeSubtree(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db, newTestLogger(t))
	ctx := context.Background()

	// 结构: root -> (c1, c2), c1 -> c3, c3 -> c4; 另有独立评论 other
	root := createTestComment(t, repo, db, 1, nil)
	c1 := createTestComment(t, repo, db, 1, &root.ID)
	c2 := createTestComment(t, repo, db, 1, &root.ID)
	c3 := createTestComment(t, repo, db, 1, &c1.ID)
	c4 := createTestComment(t, repo, db, 1, &c3.ID)
	other := createTestComment(t, repo, db, 1, nil)

	ids, err := repo.CollectSubtreeIDs(ctx, db, root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{root.ID, c1.ID, c2.ID, c3.ID, c4.ID}, ids)
	assert.NotContains(t, ids, other.ID)
}

func TestCollectSubtreeIDs_LeafOnlyContainsItself(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db, newTestLogger(t))

	leaf := createTestComment(t, repo, db, 1, nil)

	ids, err := repo.CollectSubtreeIDs(context.Background(), db, leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{leaf.ID}, ids)
}

func TestDeleteCommentsByIDs_RemovesRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db, newTestLogger(t))
	ctx := context.Background()

	root := createTestComment(t, repo, db, 1, nil)
	child := createTestComment(t, repo, db, 1, &root.ID)
	keep := createTestComment(t, repo, db, 1, nil)

	require.NoError(t, repo.DeleteCommentsByIDs(ctx, db, []uint64{root.ID, child.ID}))

	_, err := repo.GetCommentByID(ctx, root.ID)
	assert.Error(t, err)
	_, err = repo.GetCommentByID(ctx, child.ID)
	assert.Error(t, err)

	stored, err := repo.GetCommentByID(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, keep.ID, stored.ID)
}

func TestListCommentsByBlogID_AscendingOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db, newTestLogger(t))
	ctx := context.Background()

	first := createTestComment(t, repo, db, 1, nil)
	second := createTestComment(t, repo, db, 1, nil)
	createTestComment(t, repo, db, 2, nil)

	comments, err := repo.ListCommentsByBlogID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}
