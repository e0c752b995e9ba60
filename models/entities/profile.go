package entities

import "github.com/Xushengqwer/go-common/models/entities"

// Profile 用户公开主页资料
// - 与 User 一对一，社交关系（关注）单独存放在 follows 表中。
type Profile struct {
	entities.BaseModel

	// 所属用户 ID (UUID)，一对一
	UserID string `gorm:"type:char(36);not null;uniqueIndex"`

	// 展示名称
	DisplayName string `gorm:"type:varchar(50)"`

	// 个人简介
	Bio string `gorm:"type:varchar(500)"`

	// 个人网站
	Website string `gorm:"type:varchar(255)"`

	// 所在地
	Location string `gorm:"type:varchar(100)"`
}
