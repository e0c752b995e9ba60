package entities

import "github.com/Xushengqwer/go-common/models/entities"

// Comment 评论实体
// - 同一博客下的评论构成一个森林: ParentID 为 nil 表示顶层评论，
//   否则指向同博客内的另一条评论。父链由服务端在创建时校验，不会出现环。
// - 删除评论时会连同其整棵回复子树一起删除。
type Comment struct {
	entities.BaseModel

	// 所属博客 ID
	BlogID uint64 `gorm:"not null;index"`

	// 评论作者 ID (UUID)
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 评论内容
	Content string `gorm:"type:text;not null"`

	// 父评论 ID，nil 表示顶层评论
	ParentID *uint64 `gorm:"index"`
}
