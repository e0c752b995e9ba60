package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CommentRepository 定义了评论数据的持久化操作接口。
type CommentRepository interface {
	// CreateComment 持久化一条新评论。
	CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error

	// GetCommentByID 根据 ID 检索评论，未找到时返回 commonerrors.ErrRepoNotFound。
	GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error)

	// ListCommentsByBlogID 返回某博客下的全部评论（平铺，按创建时间升序）。
	// - 树形结构由服务层根据 ParentID 组装。
	ListCommentsByBlogID(ctx context.Context, blogID uint64) ([]*entities.Comment, error)

	// UpdateCommentContent 更新评论内容，未找到时返回 commonerrors.ErrRepoNotFound。
	UpdateCommentContent(ctx context.Context, id uint64, content string) error

	// CollectSubtreeIDs 收集以 rootID 为根的整棵回复子树的评论 ID（含根自身）。
	// - 使用显式工作队列逐层展开，删除深度不受调用栈限制。
	// - 传入 db 参数以便在删除事务中收集，收集与删除看到同一快照。
	CollectSubtreeIDs(ctx context.Context, db *gorm.DB, rootID uint64) ([]uint64, error)

	// DeleteCommentsByIDs 按 ID 列表物理删除评论。
	DeleteCommentsByIDs(ctx context.Context, db *gorm.DB, ids []uint64) error

	// ListCommentIDsByBlogID 返回某博客下全部评论 ID，用于博客删除时的级联清理。
	// - 传入 db 参数以便在删除事务中查询。
	ListCommentIDsByBlogID(ctx context.Context, db *gorm.DB, blogID uint64) ([]uint64, error)

	// DeleteCommentsByBlogID 物理删除某博客下的全部评论。
	DeleteCommentsByBlogID(ctx context.Context, db *gorm.DB, blogID uint64) error

	// CountCommentsByBlogID 统计某博客下的评论数。
	CountCommentsByBlogID(ctx context.Context, blogID uint64) (int64, error)

	// ListAllComments 全量分页查询评论，按创建时间降序，供管理端巡查使用。
	ListAllComments(ctx context.Context, offset, limit int) ([]*entities.Comment, int64, error)
}

type commentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCommentRepository 是 commentRepository 的构造函数。
func NewCommentRepository(db *gorm.DB, logger *core.ZapLogger) CommentRepository {
	return &commentRepository{db: db, logger: logger}
}

// CreateComment 实现评论插入。
func (r *commentRepository) CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error {
	if err := db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

// GetCommentByID 实现按 ID 查询评论。
func (r *commentRepository) GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error) {
	var comment entities.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取评论失败", zap.Uint64("commentID", id), zap.Error(err))
		return nil, err
	}
	return &comment, nil
}

// ListCommentsByBlogID 实现某博客评论的平铺查询。
func (r *commentRepository) ListCommentsByBlogID(ctx context.Context, blogID uint64) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := r.db.WithContext(ctx).
		Where("blog_id = ?", blogID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		r.logger.Error("查询博客评论列表失败", zap.Uint64("blogID", blogID), zap.Error(err))
		return nil, err
	}
	return comments, nil
}

// UpdateCommentContent 实现评论内容更新。
func (r *commentRepository) UpdateCommentContent(ctx context.Context, id uint64, content string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		r.logger.Error("更新评论内容失败", zap.Uint64("commentID", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// CollectSubtreeIDs 实现子树 ID 收集。
// 逐层查询 parent_id IN (上一层) 直到不再有子节点，队列展开避免递归。
func (r *commentRepository) CollectSubtreeIDs(ctx context.Context, db *gorm.DB, rootID uint64) ([]uint64, error) {
	all := []uint64{rootID}
	frontier := []uint64{rootID}

	for len(frontier) > 0 {
		var children []uint64
		err := db.WithContext(ctx).
			Model(&entities.Comment{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			r.logger.Error("收集评论子树失败", zap.Uint64("rootID", rootID), zap.Error(err))
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}

	return all, nil
}

// DeleteCommentsByIDs 实现按 ID 列表的物理删除。
func (r *commentRepository) DeleteCommentsByIDs(ctx context.Context, db *gorm.DB, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Unscoped().
		Where("id IN ?", ids).
		Delete(&entities.Comment{}).Error
}

// ListCommentIDsByBlogID 实现博客下评论 ID 的查询。
func (r *commentRepository) ListCommentIDsByBlogID(ctx context.Context, db *gorm.DB, blogID uint64) ([]uint64, error) {
	var ids []uint64
	err := db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("blog_id = ?", blogID).
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Error("查询博客评论 ID 列表失败", zap.Uint64("blogID", blogID), zap.Error(err))
		return nil, err
	}
	return ids, nil
}

// DeleteCommentsByBlogID 实现博客下评论的级联物理删除。
func (r *commentRepository) DeleteCommentsByBlogID(ctx context.Context, db *gorm.DB, blogID uint64) error {
	return db.WithContext(ctx).Unscoped().
		Where("blog_id = ?", blogID).
		Delete(&entities.Comment{}).Error
}

// ListAllComments 实现管理端的全量评论分页查询。
func (r *commentRepository) ListAllComments(ctx context.Context, offset, limit int) ([]*entities.Comment, int64, error) {
	var comments []*entities.Comment
	var totalCount int64

	if err := r.db.WithContext(ctx).Model(&entities.Comment{}).Count(&totalCount).Error; err != nil {
		r.logger.Error("全量评论列表：计数查询失败", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return comments, 0, nil
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		r.logger.Error("全量评论列表：列表查询失败", zap.Error(err))
		return nil, 0, err
	}
	return comments, totalCount, nil
}

// CountCommentsByBlogID 实现博客评论计数。
func (r *commentRepository) CountCommentsByBlogID(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}
