package entities

import (
	"time"

	"github.com/Xushengqwer/go-common/models/entities"

	"github.com/Xushengqwer/blog_service/models/enums"
)

// Report 举报实体
// - 唯一约束 (blog_id, reporter_id): 同一用户对同一博客至多一条举报，
//   依赖数据库层面的唯一索引在并发插入时保证去重。
type Report struct {
	entities.BaseModel

	// 被举报的博客 ID
	BlogID uint64 `gorm:"not null;uniqueIndex:idx_blog_reporter"`

	// 举报人 ID (UUID)
	ReporterID string `gorm:"type:char(36);not null;uniqueIndex:idx_blog_reporter"`

	// 举报原因（封闭枚举，见 enums.ReportReason）
	Reason enums.ReportReason `gorm:"type:varchar(32);not null"`

	// 举报的补充说明，可为空
	Message string `gorm:"type:varchar(500)"`

	// 处理状态: 0=pending, 1=reviewed，单向迁移
	Status enums.ReportStatus `gorm:"type:int;default:0;index"`

	// 处理该举报的管理员 ID，仅 reviewed 时存在
	ReviewedBy *uint64

	// 处理时间，仅 reviewed 时存在
	ReviewedAt *time.Time
}
