package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CommentVO 定义了评论的响应数据结构。
// - Replies 嵌套子评论，树形结构由服务层根据 ParentID 组装。
type CommentVO struct {
	ID        uint64       `json:"id"`                  // 评论ID
	BlogID    uint64       `json:"blog_id"`             // 所属博客ID
	AuthorID  string       `json:"author_id"`           // 评论作者ID
	Content   string       `json:"content"`             // 评论内容
	ParentID  *uint64      `json:"parent_id,omitempty"` // 父评论ID，顶层评论为空
	LikeCount int64        `json:"like_count"`          // 点赞数
	Replies   []*CommentVO `json:"replies"`             // 子评论列表
	CreatedAt time.Time    `json:"created_at"`          // 创建时间
	UpdatedAt time.Time    `json:"updated_at"`          // 更新时间
}

// CommentListVO 定义了博客评论树的响应结构
type CommentListVO struct {
	Comments []*CommentVO `json:"comments"` // 顶层评论列表（子评论嵌套在 Replies 中）
	Total    int64        `json:"total"`    // 评论总数（含子评论）
}

// MapCommentToVO 将评论实体转换为 VO（不含子评论）。
func MapCommentToVO(comment *entities.Comment) *CommentVO {
	if comment == nil {
		return nil
	}
	return &CommentVO{
		ID:        comment.ID,
		BlogID:    comment.BlogID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		ParentID:  comment.ParentID,
		Replies:   []*CommentVO{},
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// BuildCommentTree 将平铺的评论列表组装为树。
// - 父评论已被删除的孤儿评论会被提升为顶层评论，保证不丢数据。
func BuildCommentTree(comments []*entities.Comment) []*CommentVO {
	if len(comments) == 0 {
		return []*CommentVO{}
	}

	byID := make(map[uint64]*CommentVO, len(comments))
	for _, c := range comments {
		byID[c.ID] = MapCommentToVO(c)
	}

	roots := make([]*CommentVO, 0)
	for _, c := range comments {
		node := byID[c.ID]
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
