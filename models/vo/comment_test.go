package vo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xushengqwer/blog_service/models/entities"
)

func makeComment(id uint64, parentID *uint64) *entities.Comment {
	c := &entities.Comment{
		BlogID:   1,
		AuthorID: "user-1",
		Content:  "content",
		ParentID: parentID,
	}
	c.ID = id
	return c
}

func TestBuildCommentTree_Nesting(t *testing.T) {
	root := makeComment(1, nil)
	childID := uint64(1)
	child := makeComment(2, &childID)
	grandChildID := uint64(2)
	grandChild := makeComment(3, &grandChildID)

	tree := BuildCommentTree([]*entities.Comment{root, child, grandChild})

	assert.Len(t, tree, 1)
	assert.Equal(t, uint64(1), tree[0].ID)
	assert.Len(t, tree[0].Replies, 1)
	assert.Equal(t, uint64(2), tree[0].Replies[0].ID)
	assert.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, uint64(3), tree[0].Replies[0].Replies[0].ID)
}

func TestBuildCommentTree_MultipleRoots(t *testing.T) {
	tree := BuildCommentTree([]*entities.Comment{
		makeComment(1, nil),
		makeComment(2, nil),
	})

	assert.Len(t, tree, 2)
}

func TestBuildCommentTree_OrphanPromotedToRoot(t *testing.T) {
	// 父评论 99 不在列表中（已被删除），孤儿评论提升为顶层，不丢数据。
	missingParent := uint64(99)
	tree := BuildCommentTree([]*entities.Comment{
		makeComment(1, nil),
		makeComment(2, &missingParent),
	})

	assert.Len(t, tree, 2)
}

func TestBuildCommentTree_Empty(t *testing.T) {
	tree := BuildCommentTree(nil)

	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestMapCommentToVO_NilSafe(t *testing.T) {
	assert.Nil(t, MapCommentToVO(nil))
}
