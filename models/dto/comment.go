package dto

// CreateCommentRequest 定义了发表评论的请求数据结构
type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,max=2000"` // 评论内容，必填，最大2000字符
	ParentID *uint64 `json:"parent_id" binding:"omitempty,gt=0"`  // 父评论 ID，为空表示顶层评论
}

// UpdateCommentRequest 定义了编辑评论的请求数据结构
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"` // 新的评论内容，必填
}
