package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// BlogVO 定义了博客摘要信息的响应数据结构
type BlogVO struct {
	ID              uint64    `json:"id"`               // 博客ID
	Title           string    `json:"title"`            // 博客标题
	AuthorID        string    `json:"author_id"`        // 作者ID
	Category        string    `json:"category"`         // 分类
	Tags            []string  `json:"tags"`             // 标签列表
	CoverImageURL   string    `json:"cover_image_url"`  // 封面图 URL
	ViewCount       int64     `json:"view_count"`       // 浏览量
	Visibility      string    `json:"visibility"`       // 可见性: active / removed
	CommentsEnabled bool      `json:"comments_enabled"` // 是否允许评论
	CreatedAt       time.Time `json:"created_at"`       // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`       // 更新时间
}

// BlogDetailVO 定义了博客详情的响应数据结构
type BlogDetailVO struct {
	BlogVO
	Content      string `json:"content"`       // 博客正文
	LikeCount    int64  `json:"like_count"`    // 点赞数
	DislikeCount int64  `json:"dislike_count"` // 点踩数
	CommentCount int64  `json:"comment_count"` // 评论数
}

// BlogListVO 定义了博客列表的分页响应结构。
// - Source 标识本次数据来自缓存还是数据库，便于观测缓存命中情况。
type BlogListVO struct {
	Blogs    []*BlogVO `json:"blogs"`     // 当前页的博客列表
	Total    int64     `json:"total"`     // 符合条件的总记录数
	Page     int       `json:"page"`      // 当前页码
	PageSize int       `json:"page_size"` // 每页数量
	Source   string    `json:"source,omitempty"` // 数据来源: cache / db
}

// MapBlogToVO 将博客实体转换为摘要 VO。
func MapBlogToVO(blog *entities.Blog) *BlogVO {
	if blog == nil {
		return nil
	}
	tags := blog.Tags
	if tags == nil {
		tags = []string{} // 返回空切片而不是 nil，便于前端处理
	}
	return &BlogVO{
		ID:              blog.ID,
		Title:           blog.Title,
		AuthorID:        blog.AuthorID,
		Category:        blog.Category,
		Tags:            tags,
		CoverImageURL:   blog.CoverImageURL,
		ViewCount:       blog.ViewCount,
		Visibility:      blog.Visibility.String(),
		CommentsEnabled: blog.CommentsEnabled,
		CreatedAt:       blog.CreatedAt,
		UpdatedAt:       blog.UpdatedAt,
	}
}

// MapBlogsToVOs 将博客实体列表转换为摘要 VO 列表。
func MapBlogsToVOs(blogs []*entities.Blog) []*BlogVO {
	if len(blogs) == 0 {
		return []*BlogVO{}
	}
	vos := make([]*BlogVO, 0, len(blogs))
	for _, blog := range blogs {
		if blog == nil {
			continue
		}
		vos = append(vos, MapBlogToVO(blog))
	}
	return vos
}
