package constant

import "time"

// 服务标识，用于链路追踪与 OTel 中间件
const (
	ServiceName    = "blog-service"
	ServiceVersion = "1.0.0"
)

// 定时任务的 cron 表达式
const (
	// SyncViewCountInterval 浏览量从 Redis 回写 MySQL 的调度间隔
	SyncViewCountInterval = "@every 5m"
	// PopularBlogsCacheCronSpec 热门博客榜单缓存的刷新间隔
	PopularBlogsCacheCronSpec = "@every 10m"
)

// 缓存 TTL
const (
	// BlogListCacheTTL 列表缓存过期时间。失效主要依赖写路径的同步清扫，
	// TTL 只是兜底。
	BlogListCacheTTL = time.Hour
	// BlogDetailCacheTTL 详情缓存过期时间
	BlogDetailCacheTTL = time.Hour
	// PopularBlogsCacheTTL 热门榜单缓存过期时间，略大于刷新间隔
	PopularBlogsCacheTTL = 15 * time.Minute
)

// 认证相关时间窗口
const (
	// EmailOTPTTL 邮箱验证码有效期
	EmailOTPTTL = 10 * time.Minute
	// ResetTokenTTL 密码重置令牌有效期
	ResetTokenTTL = 10 * time.Minute
	// TokenExpiry 登录令牌有效期（用户与管理员一致）
	TokenExpiry = 30 * 24 * time.Hour
)

// 限流窗口与各端点预算（按来源 IP 计数，后端故障时放行）
const (
	RateLimitWindow = 15 * time.Minute

	RateLimitRegister       = 5
	RateLimitLogin          = 5
	RateLimitVerifyEmail    = 5
	RateLimitResendOTP      = 3
	RateLimitForgotPassword = 3
	RateLimitAdminLogin     = 3
)

// COSObjectKeyPrefixBlogCovers 博客封面图在对象存储中的对象键前缀
const COSObjectKeyPrefixBlogCovers = "blogs/covers/"
