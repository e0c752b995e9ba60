package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

// BlogAdminRepository 定义了管理端对博客可见性状态机的持久化操作接口。
type BlogAdminRepository interface {
	// GetBlogForUpdate 在事务内加行锁读取博客，用于可见性迁移前的状态检查。
	// - 状态机的"同状态迁移返回冲突"语义依赖先读后写，行锁防止并发迁移交错。
	GetBlogForUpdate(ctx context.Context, tx *gorm.DB, id uint64) (*entities.Blog, error)

	// SetVisibility 更新博客的可见性及下架元信息。
	// - removed 时填充 removedAt/removedBy，restore 时清空二者。
	SetVisibility(ctx context.Context, tx *gorm.DB, id uint64, v enums.Visibility, removedAt *time.Time, removedBy *uint64) error

	// ListAllBlogs 管理端分页查询全部博客（不过滤可见性），可按可见性筛选。
	ListAllBlogs(ctx context.Context, visibility *enums.Visibility, offset, limit int) ([]*entities.Blog, int64, error)

	// CountBlogs 按可见性统计博客数量，用于管理端统计面板。
	CountBlogs(ctx context.Context, visibility *enums.Visibility) (int64, error)
}

type blogAdminRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewBlogAdminRepository 是 blogAdminRepository 的构造函数。
func NewBlogAdminRepository(db *gorm.DB, logger *core.ZapLogger) BlogAdminRepository {
	return &blogAdminRepository{db: db, logger: logger}
}

// GetBlogForUpdate 实现带行锁的读取。
func (r *blogAdminRepository) GetBlogForUpdate(ctx context.Context, tx *gorm.DB, id uint64) (*entities.Blog, error) {
	var blog entities.Blog
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("加锁读取博客失败", zap.Uint64("blogID", id), zap.Error(err))
		return nil, err
	}
	return &blog, nil
}

// SetVisibility 实现可见性字段更新。
func (r *blogAdminRepository) SetVisibility(ctx context.Context, tx *gorm.DB, id uint64, v enums.Visibility, removedAt *time.Time, removedBy *uint64) error {
	result := tx.WithContext(ctx).
		Model(&entities.Blog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"visibility": v,
			"removed_at": removedAt,
			"removed_by": removedBy,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("更新博客可见性失败",
			zap.Error(result.Error),
			zap.Uint64("blogID", id),
			zap.String("visibility", v.String()),
		)
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新博客可见性但未找到记录", zap.Uint64("blogID", id))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// ListAllBlogs 实现管理端的全量分页查询。
func (r *blogAdminRepository) ListAllBlogs(ctx context.Context, visibility *enums.Visibility, offset, limit int) ([]*entities.Blog, int64, error) {
	var blogs []*entities.Blog
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entities.Blog{})
	countQuery := r.db.WithContext(ctx).Model(&entities.Blog{})
	if visibility != nil {
		query = query.Where("visibility = ?", *visibility)
		countQuery = countQuery.Where("visibility = ?", *visibility)
	}

	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("管理端博客列表：计数查询失败", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return blogs, 0, nil
	}

	err := query.Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&blogs).Error
	if err != nil {
		r.logger.Error("管理端博客列表：列表查询失败", zap.Error(err))
		return nil, 0, err
	}
	return blogs, totalCount, nil
}

// CountBlogs 实现按可见性统计。
func (r *blogAdminRepository) CountBlogs(ctx context.Context, visibility *enums.Visibility) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Blog{})
	if visibility != nil {
		query = query.Where("visibility = ?", *visibility)
	}
	if err := query.Count(&count).Error; err != nil {
		r.logger.Error("统计博客数量失败", zap.Error(err))
		return 0, err
	}
	return count, nil
}
