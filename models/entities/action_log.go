package entities

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/enums"
)

// AdminActionLog 管理员操作审计日志
// - 追加写入，公开契约上不存在任何修改或删除操作，因此不嵌入 BaseModel
//   （没有 UpdatedAt / DeletedAt 的语义）。
// - 与触发它的管理操作写在同一个数据库事务中，保证操作与日志同生共死。
type AdminActionLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	// 执行操作的管理员 ID
	AdminID uint64 `gorm:"not null;index"`

	// 动作枚举，见 enums.AdminAction
	Action enums.AdminAction `gorm:"type:varchar(32);not null"`

	// 目标对象类型: Blog / User / Report
	TargetType enums.TargetType `gorm:"type:varchar(16);not null"`

	// 目标对象 ID（博客/举报为数字 ID，用户为 UUID，统一存为字符串）
	TargetID string `gorm:"type:varchar(64);not null;index"`

	// 附加元数据，例如封禁原因、举报结论
	Meta map[string]any `gorm:"serializer:json;type:json"`

	CreatedAt time.Time
}
