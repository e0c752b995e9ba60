package dto

// CreateReportRequest 定义了举报博客的请求数据结构
type CreateReportRequest struct {
	Reason  string `json:"reason" binding:"required,oneof=spam abuse hate plagiarism misinformation other"` // 举报理由，必填，闭集枚举
	Message string `json:"message" binding:"omitempty,max=500"`                                             // 补充说明，可选
}

// ListReportsQuery 定义了管理端举报列表的查询参数
type ListReportsQuery struct {
	PaginationQuery
	Status *int `json:"status" form:"status" binding:"omitempty,oneof=0 1"` // 状态筛选: 0=pending, 1=reviewed，可选
}
