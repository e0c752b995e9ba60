package dto

// UpdateProfileRequest 定义了编辑个人资料的请求数据结构
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"omitempty,max=50"` // 展示名，可选
	Bio         string `json:"bio" binding:"omitempty,max=500"`         // 简介，可选
	Website     string `json:"website" binding:"omitempty,url"`         // 个人网站，可选
	Location    string `json:"location" binding:"omitempty,max=100"`    // 所在地，可选
}
