package enums

// Permission 管理员能力令牌（封闭枚举）。
// - 每个管理端点声明自己需要的 Permission，权限中间件据此放行或拒绝。
// - 没有通配符: 即使持有合法管理员令牌，缺少对应能力时仍返回 403。
type Permission string

const (
	PermManageUsers    Permission = "MANAGE_USERS"
	PermManageBlogs    Permission = "MANAGE_BLOGS"
	PermManageComments Permission = "MANAGE_COMMENTS"
	PermManageReports  Permission = "MANAGE_REPORTS"
	PermViewLogs       Permission = "VIEW_LOGS"
)

// IsValid 校验能力令牌是否在封闭枚举内，防止配置中的拼写错误静默失效。
func (p Permission) IsValid() bool {
	switch p {
	case PermManageUsers, PermManageBlogs, PermManageComments, PermManageReports, PermViewLogs:
		return true
	}
	return false
}

// Permissions 管理员持有的能力集合，以 JSON 数组形式存储在数据库中。
type Permissions []Permission

// Contains 判断集合中是否包含指定能力。
func (ps Permissions) Contains(p Permission) bool {
	for _, item := range ps {
		if item == p {
			return true
		}
	}
	return false
}

// AdminAction 审计日志中记录的管理员动作枚举。
type AdminAction string

const (
	ActionBlogRemoved    AdminAction = "BLOG_REMOVED"
	ActionBlogRestored   AdminAction = "BLOG_RESTORED"
	ActionBlogDeleted    AdminAction = "BLOG_DELETED"
	ActionUserDeleted    AdminAction = "USER_DELETED"
	ActionUserBanned     AdminAction = "USER_BANNED"
	ActionUserUnbanned   AdminAction = "USER_UNBANNED"
	ActionReportReviewed AdminAction = "REPORT_REVIEWED"
)

// TargetType 审计日志目标对象的类型。
type TargetType string

const (
	TargetBlog   TargetType = "Blog"
	TargetUser   TargetType = "User"
	TargetReport TargetType = "Report"
)
