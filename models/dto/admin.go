package dto

// RemoveBlogRequest 定义管理员下架博客的请求数据结构
type RemoveBlogRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=255" example:"违反社区规范"` // 下架原因，可选
}

// BanUserRequest 定义管理员封禁用户的请求数据结构
type BanUserRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=255" example:"多次发布垃圾内容"` // 封禁原因，可选
}

// ListUsersQuery 定义管理员分页查询用户的请求数据结构
type ListUsersQuery struct {
	PaginationQuery
	Search string `form:"search" json:"search,omitempty" binding:"omitempty,max=100"` // 用户名/邮箱模糊筛选，可选
}

// ListBlogsAdminQuery 定义管理员分页查询博客的请求数据结构
type ListBlogsAdminQuery struct {
	PaginationQuery
	Visibility *int `form:"visibility" json:"visibility,omitempty" binding:"omitempty,oneof=0 1"` // 可见性筛选: 0=active, 1=removed，可选
}
