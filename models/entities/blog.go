package entities

import (
	"time"

	"github.com/Xushengqwer/go-common/models/entities"

	"github.com/Xushengqwer/blog_service/models/enums"
)

// Blog 博客实体
// - 使用场景: 博客列表页与详情页的数据源，缓存层缓存的也是由它组装出的 VO。
// - 表名: blogs (GORM 默认使用结构体名复数形式)
type Blog struct {
	entities.BaseModel // 嵌入公共 BaseModel，包含 ID, CreatedAt, UpdatedAt, DeletedAt，支持软删除

	// 标题，必填，最大长度255个字符
	// - 类型: varchar(255)，限制长度以提高查询效率
	Title string `gorm:"type:varchar(255);not null"`

	// 正文内容
	// - 类型: text，博客正文可能较长，不适合 varchar
	Content string `gorm:"type:text;not null"`

	// 作者ID，关联用户表
	// - 类型: char(36)，用户ID为UUID格式（36个字符）
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 分类，用于列表筛选
	// - 类型: varchar(50)，分类名称较短
	Category string `gorm:"type:varchar(50);not null;index"`

	// 标签集合，以 JSON 数组形式存储
	// - 使用 GORM 的 JSON 序列化器，避免额外的标签关联表
	Tags []string `gorm:"serializer:json;type:json"`

	// 封面图 URL，来源于对象存储上传后的公开访问地址
	CoverImageURL string `gorm:"type:varchar(512)"`

	// 封面图在对象存储中的对象键，删除博客时据此清理存储
	CoverObjectKey string `gorm:"type:varchar(255)"`

	// 浏览量，由定时任务从 Redis 计数器批量回写
	// - 单调不减; 崩溃时允许丢失两次回写之间的增量
	ViewCount int64 `gorm:"type:bigint;default:0"`

	// 可见性状态，枚举: 0=active, 1=removed
	// - 仅管理员可以修改，公开读路径只返回 active 的博客
	Visibility enums.Visibility `gorm:"type:int;default:0;index"`

	// 下架时间，仅当 Visibility 为 removed 时存在
	RemovedAt *time.Time

	// 执行下架操作的管理员 ID，仅当 Visibility 为 removed 时存在
	RemovedBy *uint64

	// 评论开关，关闭后该博客下的评论创建请求被拒绝
	// - 不设列默认值: 带默认值的 bool 列在插入 false 时会被 GORM 省略而翻转回 true，
	//   由服务层在创建时显式赋值
	CommentsEnabled bool `gorm:"not null"`
}
