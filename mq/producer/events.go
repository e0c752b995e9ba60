package producer

import "time"

// BlogEventData 承载博客事件中的博客核心数据。
type BlogEventData struct {
	ID        uint64   `json:"id"`
	Title     string   `json:"title"`
	AuthorID  string   `json:"author_id"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"created_at"` // UnixMilli
}

// BlogCreatedEvent 在博客创建成功后发布，供搜索索引等下游服务消费。
type BlogCreatedEvent struct {
	EventID   string        `json:"event_id"`
	Timestamp time.Time     `json:"timestamp"`
	Blog      BlogEventData `json:"blog"`
}

// BlogDeletedEvent 在博客被永久删除后发布。
type BlogDeletedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	BlogID    uint64    `json:"blog_id"`
}

// ModerationActionEvent 在管理端执行下架/恢复/封禁等操作后发布，
// 供审计与通知服务消费。
type ModerationActionEvent struct {
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	AdminID    uint64    `json:"admin_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Reason     string    `json:"reason,omitempty"`
}
