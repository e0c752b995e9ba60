package constant

// Redis Key 相关常量 (导出)
const (
	// --- Key 前缀 (用于动态生成 Key) ---

	// BlogListCachePrefix 是博客列表缓存 Key 的命名空间前缀。
	// 完整 Key 由 BuildCacheKey 生成: "blogs:<查询参数规范化后的md5>"
	// Redis 类型: String (JSON 序列化的列表 VO)
	BlogListCachePrefix = "blogs"

	// BlogDetailCachePrefix 是单篇博客详情缓存的 Key 前缀。
	// 示例 Key: "blog:123" (其中 123 是 blogID)
	// Redis 类型: String (JSON 序列化的详情 VO)
	BlogDetailCachePrefix = "blog:"

	// BlogListInvalidatePattern 是列表缓存失效时使用的匹配模式。
	// 任何接受写入（创建/更新/删除/可见性/互动变化）后同步按此模式清扫。
	BlogListInvalidatePattern = "blogs:*"

	// BlogViewCountPrefix 是博客浏览量计数器的 Key 前缀。
	// 每篇博客对应一个 String 类型的 Key，用于原子计数，
	// 由定时任务批量回写 MySQL 后删除。
	// 示例 Key: "blog_view_count:123"
	BlogViewCountPrefix = "blog_view_count:"

	// EmailOTPPrefix 是邮箱验证码的 Key 前缀，值为验证码本身，带 TTL。
	// 示例 Key: "email_otp:user@example.com"
	EmailOTPPrefix = "email_otp:"

	// RateLimitPrefix 是限流计数器的 Key 前缀。
	// 示例 Key: "ratelimit:login:203.0.113.7"
	RateLimitPrefix = "ratelimit:"

	// --- 固定 Key 名称 (全局使用的 Key) ---

	// PopularBlogsCacheKey 是热门博客榜单缓存的 Key 名称。
	// 由定时任务按浏览量 Top N 生成。
	// Redis 类型: String (JSON 序列化的博客列表)
	PopularBlogsCacheKey = "blogs:popular"
)
