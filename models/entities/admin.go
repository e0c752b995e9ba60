package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"

	"github.com/Xushengqwer/blog_service/models/enums"
)

// Admin 管理员实体
// - 与普通用户是两个独立的身份空间，令牌中的 type 声明区分二者。
// - Permissions 以 JSON 数组存储，类型为封闭枚举而非自由字符串。
type Admin struct {
	entities.BaseModel

	// 管理员登录名，全局唯一
	Username string `gorm:"type:varchar(50);not null;uniqueIndex"`

	// 管理员邮箱
	Email string `gorm:"type:varchar(255);not null;uniqueIndex"`

	// 密码哈希 (bcrypt)
	PasswordHash string `gorm:"type:varchar(100);not null"`

	// 能力集合，权限中间件据此判定是否放行管理操作
	Permissions enums.Permissions `gorm:"serializer:json;type:json"`
}
