package myErrors

import "errors"

// ErrCacheMiss 表示在缓存层未找到对应的键值
var ErrCacheMiss = errors.New("cache: key not found (miss)")

// 业务规则冲突类错误 (对应 HTTP 409)
var (
	// ErrAlreadyReported 同一用户重复举报同一博客
	ErrAlreadyReported = errors.New("report: already reported by this user")
	// ErrAlreadyReviewed 举报已被处理，不允许重复处理
	ErrAlreadyReviewed = errors.New("report: already reviewed")
	// ErrAlreadyInTargetState 状态机迁移的目标状态与当前状态相同
	ErrAlreadyInTargetState = errors.New("state: already in target state")
	// ErrEmailTaken 注册时邮箱已被占用
	ErrEmailTaken = errors.New("auth: email already registered")
)

// 鉴权与权限类错误 (对应 HTTP 401 / 403)
var (
	// ErrInvalidCredentials 登录凭证错误
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrUserBanned 用户已被封禁，拒绝登录
	ErrUserBanned = errors.New("auth: user is banned")
	// ErrNotVerified 邮箱未验证，拒绝登录
	ErrNotVerified = errors.New("auth: email not verified")
	// ErrInvalidOTP 邮箱验证码错误或已过期
	ErrInvalidOTP = errors.New("auth: invalid or expired otp")
	// ErrInvalidResetToken 密码重置令牌无效或已过期
	ErrInvalidResetToken = errors.New("auth: invalid or expired reset token")
	// ErrForbidden 已认证但无权执行该操作
	ErrForbidden = errors.New("auth: operation not permitted")
)

// 内容可用性类错误
var (
	// ErrCommentsDisabled 博客已关闭评论
	ErrCommentsDisabled = errors.New("blog: comments are disabled")
	// ErrSelfFollow 不允许关注自己
	ErrSelfFollow = errors.New("profile: cannot follow yourself")
)
