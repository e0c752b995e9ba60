package dto

// RegisterRequest 定义了用户注册的请求数据结构
// - 添加了 binding 标签用于输入验证
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`  // 用户名，必填，2-50字符
	Email    string `json:"email" binding:"required,email,max=255"`    // 邮箱，必填
	Password string `json:"password" binding:"required,min=8,max=128"` // 密码，必填，最少8字符
}

// LoginRequest 定义了邮箱密码登录的请求数据结构
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // 邮箱，必填
	Password string `json:"password" binding:"required"`    // 密码，必填
}

// VerifyEmailRequest 定义了邮箱验证码校验的请求数据结构
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`       // 邮箱，必填
	Code  string `json:"code" binding:"required,len=6,number"` // 6位数字验证码，必填
}

// ResendOTPRequest 定义了重发验证码的请求数据结构
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"` // 邮箱，必填
}

// ForgotPasswordRequest 定义了找回密码的请求数据结构
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"` // 邮箱，必填
}

// ResetPasswordRequest 定义了重置密码的请求数据结构
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`                      // 邮件中的重置令牌，必填
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"` // 新密码，必填
}

// OAuthLoginRequest 定义了第三方登录的请求数据结构
// - 第三方身份已由网关侧完成校验，这里接收校验后的身份信息。
type OAuthLoginRequest struct {
	Provider   string `json:"provider" binding:"required,oneof=google github"` // 第三方平台，必填
	ProviderID string `json:"provider_id" binding:"required"`                  // 平台内用户标识，必填
	Email      string `json:"email" binding:"required,email"`                  // 邮箱，必填
	Username   string `json:"username" binding:"required,max=50"`              // 用户名，必填
	Avatar     string `json:"avatar" binding:"omitempty,url"`                  // 头像 URL，可选
}

// UpdateUserRequest 定义了用户更新自己账号信息的请求数据结构
// - 指针字段为 nil 表示不更新对应字段。
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=2,max=50"` // 用户名，可选
	Avatar   *string `json:"avatar" binding:"omitempty,url"`            // 头像 URL，可选
}

// AdminLoginRequest 定义了管理员登录的请求数据结构
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"` // 管理员用户名，必填
	Password string `json:"password" binding:"required"` // 密码，必填
}
