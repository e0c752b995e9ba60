package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

// BlogRepository 定义了博客数据在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
type BlogRepository interface {
	// CreateBlog 持久化一条新的博客记录。
	// - 传入 db 参数以便在服务层事务中组合使用。
	CreateBlog(ctx context.Context, db *gorm.DB, blog *entities.Blog) error

	// GetBlogByID 根据单个 ID 检索博客。
	// - 如果未找到，返回 commonerrors.ErrRepoNotFound。
	// - 不做可见性过滤，由调用方根据场景（公开读/作者读/管理端）自行判断。
	GetBlogByID(ctx context.Context, id uint64) (*entities.Blog, error)

	// ListPublicBlogs 分页查询公开可见 (visibility = active) 的博客列表。
	// - 支持按分类、标题关键词筛选与排序。
	// - 返回: 博客列表, 符合条件的总记录数, 错误。
	ListPublicBlogs(ctx context.Context, params *dto.ListBlogsQuery) ([]*entities.Blog, int64, error)

	// ListBlogsByAuthor 分页查询指定作者的博客列表。
	// - 作者本人可以看到自己已被下架的博客，因此不过滤可见性。
	ListBlogsByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*entities.Blog, int64, error)

	// UpdateBlog 更新指定博客的内容字段（标题/正文/分类/标签/封面）。
	// - 传入 nil 表示不更新对应字段; 总是刷新 updated_at。
	// - 未找到记录时返回 commonerrors.ErrRepoNotFound。
	UpdateBlog(ctx context.Context, blogID uint64, updates map[string]interface{}) error

	// HardDeleteBlog 物理删除博客记录。
	// - 博客删除是永久操作，与可见性状态机无关，需要在事务中连同
	//   评论/举报/互动记录一起级联清理。
	HardDeleteBlog(ctx context.Context, db *gorm.DB, id uint64) error

	// ListTopViewedBlogs 按浏览量降序取前 N 篇公开博客，用于热门榜单缓存预热。
	ListTopViewedBlogs(ctx context.Context, limit int) ([]*entities.Blog, error)
}

// blogRepository 是 BlogRepository 接口针对 MySQL 的具体实现。
type blogRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewBlogRepository 是 blogRepository 的构造函数。
func NewBlogRepository(db *gorm.DB, logger *core.ZapLogger) BlogRepository {
	return &blogRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBlog 实现博客的数据库插入操作。
func (r *blogRepository) CreateBlog(ctx context.Context, db *gorm.DB, blog *entities.Blog) error {
	// 使用传入的 db 对象（可能是事务 tx）执行操作，
	// GORM 自动填充 BaseModel 中的 ID 和时间戳。
	if err := db.WithContext(ctx).Create(blog).Error; err != nil {
		return err
	}
	return nil
}

// GetBlogByID 实现根据单个 ID 获取博客。
func (r *blogRepository) GetBlogByID(ctx context.Context, id uint64) (*entities.Blog, error) {
	var blog entities.Blog

	err := r.db.WithContext(ctx).First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取博客未找到", zap.Uint64("blogID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取博客数据库查询失败", zap.Uint64("blogID", id), zap.Error(err))
		return nil, err
	}

	return &blog, nil
}

// ListPublicBlogs 实现公开列表的分页条件查询。
func (r *blogRepository) ListPublicBlogs(ctx context.Context, params *dto.ListBlogsQuery) ([]*entities.Blog, int64, error) {
	var blogs []*entities.Blog
	var totalCount int64

	// --- 构建基础查询: 只返回 active 的博客 ---
	query := r.db.WithContext(ctx).Model(&entities.Blog{}).Where("visibility = ?", enums.VisibilityActive)
	countQuery := r.db.WithContext(ctx).Model(&entities.Blog{}).Where("visibility = ?", enums.VisibilityActive)

	// --- 应用筛选条件 ---
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
		countQuery = countQuery.Where("category = ?", params.Category)
	}
	if params.Tag != "" {
		// 标签以 JSON 数组存储，按带引号的元素精确匹配
		tagPattern := "%\"" + params.Tag + "\"%"
		query = query.Where("tags LIKE ?", tagPattern)
		countQuery = countQuery.Where("tags LIKE ?", tagPattern)
	}
	if params.Search != "" {
		query = query.Where("title LIKE ?", "%"+params.Search+"%")
		countQuery = countQuery.Where("title LIKE ?", "%"+params.Search+"%")
	}
	if params.AuthorID != "" {
		query = query.Where("author_id = ?", params.AuthorID)
		countQuery = countQuery.Where("author_id = ?", params.AuthorID)
	}

	// --- 执行计数查询 ---
	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取公开博客列表：计数查询失败", zap.Error(err), zap.Any("params", params))
		return nil, 0, fmt.Errorf("计数公开博客失败: %w", err)
	}
	if totalCount == 0 {
		return blogs, 0, nil
	}

	// --- 排序 ---
	switch params.SortBy {
	case "views":
		query = query.Order("view_count DESC").Order("id DESC")
	case "oldest":
		query = query.Order("created_at ASC").Order("id ASC")
	default: // 最新优先
		query = query.Order("created_at DESC").Order("id DESC")
	}

	// --- 分页 ---
	page := params.Page
	if page <= 0 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	query = query.Offset((page - 1) * pageSize).Limit(pageSize)

	if err := query.Find(&blogs).Error; err != nil {
		r.logger.Error("获取公开博客列表：列表查询失败", zap.Error(err), zap.Any("params", params))
		return nil, 0, fmt.Errorf("查询公开博客列表失败: %w", err)
	}

	return blogs, totalCount, nil
}

// ListBlogsByAuthor 实现按作者的分页查询（包含已下架的博客）。
func (r *blogRepository) ListBlogsByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*entities.Blog, int64, error) {
	var blogs []*entities.Blog
	var totalCount int64

	base := r.db.WithContext(ctx).Model(&entities.Blog{}).Where("author_id = ?", authorID)
	if err := base.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取作者博客列表：计数查询失败", zap.Error(err), zap.String("authorID", authorID))
		return nil, 0, fmt.Errorf("计数作者博客失败: %w", err)
	}
	if totalCount == 0 {
		return blogs, 0, nil
	}

	err := r.db.WithContext(ctx).Model(&entities.Blog{}).
		Where("author_id = ?", authorID).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&blogs).Error
	if err != nil {
		r.logger.Error("获取作者博客列表：列表查询失败", zap.Error(err), zap.String("authorID", authorID))
		return nil, 0, fmt.Errorf("查询作者博客列表失败: %w", err)
	}

	return blogs, totalCount, nil
}

// UpdateBlog 实现博客内容字段的更新。
func (r *blogRepository) UpdateBlog(ctx context.Context, blogID uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新博客", zap.Uint64("blogID", blogID))
		return nil
	}

	// 总是刷新 updated_at
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&entities.Blog{}).
		Where("id = ?", blogID).
		Updates(updates)

	if result.Error != nil {
		r.logger.Error("更新博客数据库操作失败",
			zap.Error(result.Error),
			zap.Uint64("blogID", blogID),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新博客但未找到记录", zap.Uint64("blogID", blogID))
		return commonerrors.ErrRepoNotFound
	}

	return nil
}

// HardDeleteBlog 实现博客的物理删除。
// Unscoped 跳过软删除语义，直接 DELETE 行。
func (r *blogRepository) HardDeleteBlog(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Unscoped().Delete(&entities.Blog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// ListTopViewedBlogs 实现热门博客查询。
func (r *blogRepository) ListTopViewedBlogs(ctx context.Context, limit int) ([]*entities.Blog, error) {
	var blogs []*entities.Blog
	if limit <= 0 {
		limit = 10
	}
	err := r.db.WithContext(ctx).
		Where("visibility = ?", enums.VisibilityActive).
		Order("view_count DESC").Order("id DESC").
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		r.logger.Error("查询热门博客失败", zap.Error(err), zap.Int("limit", limit))
		return nil, err
	}
	return blogs, nil
}
