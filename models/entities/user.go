package entities

import (
	"time"

	"gorm.io/gorm"
)

// User 用户实体
// - 主键为 UUID 字符串，与博客/评论中的 AuthorID 字段对应。
// - 凭证字段 (PasswordHash) 允许为空: 联合登录（federated）账号没有本地密码。
// - 表名: users
type User struct {
	// 用户 ID，UUID 格式，由服务端在注册时生成
	ID string `gorm:"type:char(36);primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// 用户名，展示用
	Username string `gorm:"type:varchar(50);not null"`

	// 邮箱，登录凭证之一，全局唯一
	Email string `gorm:"type:varchar(255);not null;uniqueIndex"`

	// 密码哈希 (bcrypt)，联合登录账号为 nil
	PasswordHash *string `gorm:"type:varchar(100)"`

	// 联合登录提供方（如 "google"），本地账号为 nil
	Provider *string `gorm:"type:varchar(32)"`

	// 联合登录提供方侧的外部 ID
	ProviderID *string `gorm:"type:varchar(128)"`

	// 头像 URL
	Avatar string `gorm:"type:varchar(512)"`

	// 邮箱是否已通过 OTP 验证
	IsVerified bool `gorm:"default:false"`

	// 封禁状态，封禁后无法登录
	IsBanned bool `gorm:"default:false;index"`

	// 封禁时间，仅封禁时存在
	BannedAt *time.Time

	// 封禁原因，仅封禁时存在
	BanReason *string `gorm:"type:varchar(255)"`

	// 密码重置令牌的 SHA-256 哈希，单次有效
	ResetTokenHash *string `gorm:"type:char(64);index"`

	// 密码重置令牌的过期时间
	ResetTokenExpiresAt *time.Time
}
