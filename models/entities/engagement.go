package entities

import "time"

// 互动关系实体均为复合主键的成员关系表。
// - 点赞/点踩/收藏/关注都是幂等的集合成员操作，计数即集合大小，
//   不维护单独的整数计数器，避免计数与集合漂移。
// - 插入使用 ON CONFLICT DO NOTHING，删除按复合主键，保证并发切换下不丢更新。

// BlogLike 博客点赞关系
// - 不变量: 与 BlogDislike 在同一 (blog_id, user_id) 上互斥，由服务层事务保证。
type BlogLike struct {
	BlogID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    string `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
}

// BlogDislike 博客点踩关系
type BlogDislike struct {
	BlogID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    string `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
}

// Bookmark 博客收藏关系（无互斥约束的纯开关）
type Bookmark struct {
	BlogID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    string `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
}

// CommentLike 评论点赞关系
type CommentLike struct {
	CommentID uint64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    string `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
}

// Follow 用户关注关系
// - FollowerID 关注 FolloweeID; 自关注在服务层被拒绝。
type Follow struct {
	FollowerID string `gorm:"type:char(36);primaryKey"`
	FolloweeID string `gorm:"type:char(36);primaryKey;index"`
	CreatedAt  time.Time
}
