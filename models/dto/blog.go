package dto

// CreateBlogRequest 定义了创建博客的请求数据结构
// - 添加了 binding 标签用于输入验证
type CreateBlogRequest struct {
	Title    string   `json:"title" binding:"required,max=255"`                   // 博客标题，必填，最大255字符
	Content  string   `json:"content" binding:"required"`                         // 博客正文，必填
	Category string   `json:"category" binding:"omitempty,max=50"`                // 分类，可选
	Tags     []string `json:"tags" binding:"omitempty,max=10,dive,max=30"`        // 标签列表，可选，最多10个
	CoverURL string   `json:"cover_url" binding:"omitempty,url"`                  // 封面图 URL，可选（亦可通过上传接口获得）
}

// UpdateBlogRequest 定义了更新博客的请求数据结构
// - 指针字段为 nil 表示不更新对应字段。
type UpdateBlogRequest struct {
	Title           *string   `json:"title" binding:"omitempty,max=255"`           // 博客标题，可选
	Content         *string   `json:"content" binding:"omitempty"`                 // 博客正文，可选
	Category        *string   `json:"category" binding:"omitempty,max=50"`         // 分类，可选
	Tags            *[]string `json:"tags" binding:"omitempty,max=10,dive,max=30"` // 标签列表，可选
	CoverURL        *string   `json:"cover_url" binding:"omitempty,url"`           // 封面图 URL，可选
	CommentsEnabled *bool     `json:"comments_enabled"`                            // 评论开关，可选
}

// ListBlogsQuery 定义了公开博客列表的查询参数
// - 参数集合同时是列表缓存键的指纹来源，字段增减会改变缓存键空间。
type ListBlogsQuery struct {
	Page     int    `json:"page" form:"page" binding:"omitempty,gte=1"`              // 页码，默认 1
	PageSize int    `json:"page_size" form:"page_size" binding:"omitempty,gte=1,lte=100"` // 每页数量，默认 10，最大 100
	Category string `json:"category" form:"category" binding:"omitempty,max=50"`     // 分类筛选，可选
	Tag      string `json:"tag" form:"tag" binding:"omitempty,max=30"`               // 标签筛选，可选
	Search   string `json:"search" form:"search" binding:"omitempty,max=100"`        // 标题关键词，可选
	AuthorID string `json:"author_id" form:"author_id" binding:"omitempty,uuid"`     // 作者筛选，可选
	SortBy   string `json:"sort_by" form:"sort_by" binding:"omitempty,oneof=newest oldest views"` // 排序方式
}

// PaginationQuery 定义了通用的分页查询参数
type PaginationQuery struct {
	Page     int `json:"page" form:"page" binding:"omitempty,gte=1"`                   // 页码，默认 1
	PageSize int `json:"page_size" form:"page_size" binding:"omitempty,gte=1,lte=100"` // 每页数量，默认 10
}

// Offset 根据页码计算数据库偏移量，页码与每页数量非法时回退默认值。
func (q *PaginationQuery) Offset() int {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * q.Limit()
}

// Limit 返回每页数量，非法时回退默认值 10。
func (q *PaginationQuery) Limit() int {
	if q.PageSize <= 0 {
		return 10
	}
	return q.PageSize
}
