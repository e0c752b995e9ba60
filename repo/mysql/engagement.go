package mysql

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// EngagementRepository 定义了点赞/点踩/收藏/评论点赞/关注等成员关系的持久化接口。
// - 所有写操作都是原子的集合增删（INSERT ... ON CONFLICT DO NOTHING / 按复合主键 DELETE），
//   避免"读出集合-客户端改-写回"在并发切换下丢更新。
// - 写方法接受 db 参数以便在服务层事务中组合（例如点赞时原子清除点踩）。
type EngagementRepository interface {
	// --- 博客点赞 ---
	AddBlogLike(ctx context.Context, db *gorm.DB, blogID uint64, userID string) error
	RemoveBlogLike(ctx context.Context, db *gorm.DB, blogID uint64, userID string) (bool, error)
	HasBlogLike(ctx context.Context, blogID uint64, userID string) (bool, error)
	CountBlogLikes(ctx context.Context, blogID uint64) (int64, error)

	// --- 博客点踩 ---
	AddBlogDislike(ctx context.Context, db *gorm.DB, blogID uint64, userID string) error
	RemoveBlogDislike(ctx context.Context, db *gorm.DB, blogID uint64, userID string) (bool, error)
	HasBlogDislike(ctx context.Context, blogID uint64, userID string) (bool, error)
	CountBlogDislikes(ctx context.Context, blogID uint64) (int64, error)

	// --- 收藏 ---
	AddBookmark(ctx context.Context, db *gorm.DB, blogID uint64, userID string) error
	RemoveBookmark(ctx context.Context, db *gorm.DB, blogID uint64, userID string) (bool, error)
	HasBookmark(ctx context.Context, blogID uint64, userID string) (bool, error)
	ListBookmarkedBlogIDs(ctx context.Context, userID string) ([]uint64, error)

	// --- 评论点赞 ---
	AddCommentLike(ctx context.Context, db *gorm.DB, commentID uint64, userID string) error
	RemoveCommentLike(ctx context.Context, db *gorm.DB, commentID uint64, userID string) (bool, error)
	CountCommentLikes(ctx context.Context, commentID uint64) (int64, error)
	DeleteCommentLikesByCommentIDs(ctx context.Context, db *gorm.DB, commentIDs []uint64) error

	// --- 关注关系 ---
	AddFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) error
	RemoveFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) (bool, error)
	HasFollow(ctx context.Context, followerID, followeeID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)

	// DeleteByBlogID 删除某博客的全部互动记录（点赞/点踩/收藏），用于博客硬删除时的级联清理。
	DeleteByBlogID(ctx context.Context, db *gorm.DB, blogID uint64) error
}

type engagementRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewEngagementRepository 是 engagementRepository 的构造函数。
func NewEngagementRepository(db *gorm.DB, logger *core.ZapLogger) EngagementRepository {
	return &engagementRepository{db: db, logger: logger}
}

// insertIgnore 以 ON CONFLICT DO NOTHING 插入成员关系，重复插入是无害的幂等操作。
func (r *engagementRepository) insertIgnore(ctx context.Context, db *gorm.DB, value interface{}) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(value).Error
}

// --- 博客点赞 ---

func (r *engagementRepository) AddBlogLike(ctx context.Context, db *gorm.DB, blogID uint64, userID string) error {
	return r.insertIgnore(ctx, db, &entities.BlogLike{BlogID: blogID, UserID: userID})
}

// RemoveBlogLike 删除点赞关系，返回是否真的删除了一行。
func (r *engagementRepository) RemoveBlogLike(ctx context.Context, db *gorm.DB, blogID uint64, userID string) (bool, error) {
	result := db.WithContext(ctx).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Delete(&entities.BlogLike{})
	return result.RowsAffected > 0, result.Error
}

func (r *engagementRepository) HasBlogLike(ctx context.Context, blogID uint64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BlogLike{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) CountBlogLikes(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BlogLike{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

// --- 博客点踩 ---

func (r *engagementRepository) AddBlogDislike(ctx context.Context, db *gorm.DB, blogID uint64, userID string) error {
	return r.insertIgnore(ctx, db, &entities.BlogDislike{BlogID: blogID, UserID: userID})
}

func (r *engagementRepository) RemoveBlogDislike(ctx context.Context, db *gorm.DB, blogID uint64, userID string) (bool, error) {
	result := db.WithContext(ctx).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Delete(&entities.BlogDislike{})
	return result.RowsAffected > 0, result.Error
}

func (r *engagementRepository) HasBlogDislike(ctx context.Context, blogID uint64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BlogDislike{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) CountBlogDislikes(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BlogDislike{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

// --- 收藏 ---

func (r *engagementRepository) AddBookmark(ctx context.Context, db *gorm.DB, blogID uint64, userID string) error {
	return r.insertIgnore(ctx, db, &entities.Bookmark{BlogID: blogID, UserID: userID})
}

func (r *engagementRepository) RemoveBookmark(ctx context.Context, db *gorm.DB, blogID uint64, userID string) (bool, error) {
	result := db.WithContext(ctx).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Delete(&entities.Bookmark{})
	return result.RowsAffected > 0, result.Error
}

func (r *engagementRepository) HasBookmark(ctx context.Context, blogID uint64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Bookmark{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) ListBookmarkedBlogIDs(ctx context.Context, userID string) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&entities.Bookmark{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("blog_id", &ids).Error
	if err != nil {
		r.logger.Error("查询用户收藏的博客 ID 列表失败", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return ids, nil
}

// --- 评论点赞 ---

func (r *engagementRepository) AddCommentLike(ctx context.Context, db *gorm.DB, commentID uint64, userID string) error {
	return r.insertIgnore(ctx, db, &entities.CommentLike{CommentID: commentID, UserID: userID})
}

func (r *engagementRepository) RemoveCommentLike(ctx context.Context, db *gorm.DB, commentID uint64, userID string) (bool, error) {
	result := db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&entities.CommentLike{})
	return result.RowsAffected > 0, result.Error
}

func (r *engagementRepository) CountCommentLikes(ctx context.Context, commentID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

// DeleteCommentLikesByCommentIDs 删除一批评论的点赞记录，用于评论子树删除时的级联清理。
func (r *engagementRepository) DeleteCommentLikesByCommentIDs(ctx context.Context, db *gorm.DB, commentIDs []uint64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Delete(&entities.CommentLike{}).Error
}

// --- 关注关系 ---

func (r *engagementRepository) AddFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) error {
	return r.insertIgnore(ctx, db, &entities.Follow{FollowerID: followerID, FolloweeID: followeeID})
}

func (r *engagementRepository) RemoveFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) (bool, error) {
	result := db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&entities.Follow{})
	return result.RowsAffected > 0, result.Error
}

func (r *engagementRepository) HasFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

// DeleteByBlogID 级联清理某博客的互动记录。
func (r *engagementRepository) DeleteByBlogID(ctx context.Context, db *gorm.DB, blogID uint64) error {
	if err := db.WithContext(ctx).Where("blog_id = ?", blogID).Delete(&entities.BlogLike{}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("blog_id = ?", blogID).Delete(&entities.BlogDislike{}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("blog_id = ?", blogID).Delete(&entities.Bookmark{}).Error; err != nil {
		return err
	}
	return nil
}
