package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// BlogVOWrapper 对应 response.Envelope[vo.BlogVO]
type BlogVOWrapper struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"success"`
	Data    BlogVO `json:"data"` // 使用具体的 vo.BlogVO
}

// BlogDetailVOWrapper 对应 response.Envelope[vo.BlogDetailVO]
type BlogDetailVOWrapper struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    BlogDetailVO `json:"data"`
}

// BlogListVOWrapper 对应 response.Envelope[vo.BlogListVO]
type BlogListVOWrapper struct {
	Success bool       `json:"success" example:"true"`
	Message string     `json:"message,omitempty" example:"success"`
	Data    BlogListVO `json:"data"`
}

// CommentVOWrapper 对应 response.Envelope[vo.CommentVO]
type CommentVOWrapper struct {
	Success bool      `json:"success" example:"true"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    CommentVO `json:"data"`
}

// CommentListVOWrapper 对应 response.Envelope[vo.CommentListVO]
type CommentListVOWrapper struct {
	Success bool          `json:"success" example:"true"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    CommentListVO `json:"data"`
}

// AuthResultVOWrapper 对应 response.Envelope[vo.AuthResultVO]
type AuthResultVOWrapper struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    AuthResultVO `json:"data"`
}

// UserVOWrapper 对应 response.Envelope[vo.UserVO]
type UserVOWrapper struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"success"`
	Data    UserVO `json:"data"`
}

// ProfileVOWrapper 对应 response.Envelope[vo.ProfileVO]
type ProfileVOWrapper struct {
	Success bool      `json:"success" example:"true"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    ProfileVO `json:"data"`
}

// UserListVOWrapper 对应 response.Envelope[vo.UserListVO]
type UserListVOWrapper struct {
	Success bool       `json:"success" example:"true"`
	Message string     `json:"message,omitempty" example:"success"`
	Data    UserListVO `json:"data"`
}

// AdminUserVOWrapper 对应 response.Envelope[vo.AdminUserVO]
type AdminUserVOWrapper struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    AdminUserVO `json:"data"`
}

// AdminAuthResultVOWrapper 对应 response.Envelope[vo.AdminAuthResultVO]
type AdminAuthResultVOWrapper struct {
	Success bool              `json:"success" example:"true"`
	Message string            `json:"message,omitempty" example:"success"`
	Data    AdminAuthResultVO `json:"data"`
}

// ReportVOWrapper 对应 response.Envelope[vo.ReportVO]
type ReportVOWrapper struct {
	Success bool     `json:"success" example:"true"`
	Message string   `json:"message,omitempty" example:"success"`
	Data    ReportVO `json:"data"`
}

// ReportListVOWrapper 对应 response.Envelope[vo.ReportListVO]
type ReportListVOWrapper struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    ReportListVO `json:"data"`
}

// ActionLogListVOWrapper 对应 response.Envelope[vo.ActionLogListVO]
type ActionLogListVOWrapper struct {
	Success bool            `json:"success" example:"true"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    ActionLogListVO `json:"data"`
}

// AdminStatsVOWrapper 对应 response.Envelope[vo.AdminStatsVO]
type AdminStatsVOWrapper struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    AdminStatsVO `json:"data"`
}

// FollowStatsVOWrapper 对应 response.Envelope[vo.FollowStatsVO]
type FollowStatsVOWrapper struct {
	Success bool          `json:"success" example:"true"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    FollowStatsVO `json:"data"`
}

// UploadURLWrapper 对应 response.Envelope[string]，Data 为上传后的访问 URL
type UploadURLWrapper struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"success"`
	Data    string `json:"data" example:"https://bucket.cos.ap-guangzhou.myqcloud.com/covers/xxx.png"`
}

// --- 用于错误响应 或 简单成功响应 ---

// BaseResponseWrapper 代表一个只包含 Success 和 Message 的响应。
// 适用于错误情况（Data 为 nil 且 omitempty）或某些成功操作（如 DELETE）。
type BaseResponseWrapper struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"success"` // 成功或错误消息
}

// ErrorResponseWrapper 代表错误响应，可能携带字段级错误明细。
type ErrorResponseWrapper struct {
	Success bool     `json:"success" example:"false"`
	Message string   `json:"message" example:"请求参数无效"`
	Errors  []string `json:"errors,omitempty"` // 字段级错误明细
}
