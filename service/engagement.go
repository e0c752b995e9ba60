package service

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// EngagementService 定义了博客与评论互动行为的业务逻辑接口。
// - 所有操作都是切换语义: 第一次调用建立关系，再次调用解除关系，
//   返回值表示操作后关系是否存在。
// - 点赞与点踩互斥: 对同一博客，建立一方会在同一事务中清除另一方，
//   任何时刻一个用户在两个集合中至多出现在一个。
type EngagementService interface {
	// ToggleBlogLike 切换博客点赞。建立点赞时同时清除该用户的点踩。
	ToggleBlogLike(ctx context.Context, blogID uint64, userID string) (bool, error)

	// ToggleBlogDislike 切换博客点踩。建立点踩时同时清除该用户的点赞。
	ToggleBlogDislike(ctx context.Context, blogID uint64, userID string) (bool, error)

	// ToggleBookmark 切换收藏。
	ToggleBookmark(ctx context.Context, blogID uint64, userID string) (bool, error)

	// ListBookmarks 查询用户收藏的博客列表，按收藏时间降序。
	ListBookmarks(ctx context.Context, userID string) (*vo.BlogListVO, error)

	// ToggleCommentLike 切换评论点赞。
	ToggleCommentLike(ctx context.Context, commentID uint64, userID string) (bool, error)
}

type engagementService struct {
	db          *gorm.DB
	blogRepo    mysql.BlogRepository
	commentRepo mysql.CommentRepository
	engageRepo  mysql.EngagementRepository
	batchRepo   mysql.BlogBatchOperationsRepository
	cache       redis.Cache
	logger      *core.ZapLogger
}

// NewEngagementService 是 engagementService 的构造函数。
func NewEngagementService(db *gorm.DB, blogRepo mysql.BlogRepository, commentRepo mysql.CommentRepository, engageRepo mysql.EngagementRepository, batchRepo mysql.BlogBatchOperationsRepository, cache redis.Cache, logger *core.ZapLogger) EngagementService {
	return &engagementService{
		db:          db,
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		engageRepo:  engageRepo,
		batchRepo:   batchRepo,
		cache:       cache,
		logger:      logger,
	}
}

// ensureBlogVisible 校验博客存在且对公众可见。
// 已下架的博客不接受新的互动，对外统一表现为 NotFound。
func (s *engagementService) ensureBlogVisible(ctx context.Context, blogID uint64) error {
	blog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog.Visibility != enums.VisibilityActive {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// invalidateBlogDetail 互动提交后同步删除详情缓存。
// 详情缓存内嵌了点赞/点踩/评论计数，删除在响应返回前完成，写后读不会命中旧计数。
func (s *engagementService) invalidateBlogDetail(ctx context.Context, blogID uint64) {
	s.cache.Delete(ctx, fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blogID))
}

// ToggleBlogLike 实现博客点赞的切换。
func (s *engagementService) ToggleBlogLike(ctx context.Context, blogID uint64, userID string) (bool, error) {
	if err := s.ensureBlogVisible(ctx, blogID); err != nil {
		return false, err
	}

	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先尝试删除: 删到行说明之前已点赞，本次为取消。
		removed, txErr := s.engageRepo.RemoveBlogLike(ctx, tx, blogID, userID)
		if txErr != nil {
			return txErr
		}
		if removed {
			return nil
		}
		// 建立点赞与清除点踩在同一事务中提交，保证两个集合的互斥不变式。
		if txErr := s.engageRepo.AddBlogLike(ctx, tx, blogID, userID); txErr != nil {
			return txErr
		}
		if _, txErr := s.engageRepo.RemoveBlogDislike(ctx, tx, blogID, userID); txErr != nil {
			return txErr
		}
		liked = true
		return nil
	})
	if err != nil {
		s.logger.Error("切换博客点赞失败", zap.Uint64("blogID", blogID), zap.Error(err))
		return false, err
	}

	s.invalidateBlogDetail(ctx, blogID)
	return liked, nil
}

// ToggleBlogDislike 实现博客点踩的切换。
func (s *engagementService) ToggleBlogDislike(ctx context.Context, blogID uint64, userID string) (bool, error) {
	if err := s.ensureBlogVisible(ctx, blogID); err != nil {
		return false, err
	}

	var disliked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, txErr := s.engageRepo.RemoveBlogDislike(ctx, tx, blogID, userID)
		if txErr != nil {
			return txErr
		}
		if removed {
			return nil
		}
		if txErr := s.engageRepo.AddBlogDislike(ctx, tx, blogID, userID); txErr != nil {
			return txErr
		}
		if _, txErr := s.engageRepo.RemoveBlogLike(ctx, tx, blogID, userID); txErr != nil {
			return txErr
		}
		disliked = true
		return nil
	})
	if err != nil {
		s.logger.Error("切换博客点踩失败", zap.Uint64("blogID", blogID), zap.Error(err))
		return false, err
	}

	s.invalidateBlogDetail(ctx, blogID)
	return disliked, nil
}

// ToggleBookmark 实现收藏的切换。
func (s *engagementService) ToggleBookmark(ctx context.Context, blogID uint64, userID string) (bool, error) {
	if err := s.ensureBlogVisible(ctx, blogID); err != nil {
		return false, err
	}

	var bookmarked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, txErr := s.engageRepo.RemoveBookmark(ctx, tx, blogID, userID)
		if txErr != nil {
			return txErr
		}
		if removed {
			return nil
		}
		if txErr := s.engageRepo.AddBookmark(ctx, tx, blogID, userID); txErr != nil {
			return txErr
		}
		bookmarked = true
		return nil
	})
	if err != nil {
		s.logger.Error("切换博客收藏失败", zap.Uint64("blogID", blogID), zap.Error(err))
		return false, err
	}
	return bookmarked, nil
}

// ListBookmarks 实现收藏列表查询。
func (s *engagementService) ListBookmarks(ctx context.Context, userID string) (*vo.BlogListVO, error) {
	ids, err := s.engageRepo.ListBookmarkedBlogIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	blogs, err := s.batchRepo.GetBlogsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 批量查询不保证顺序，按收藏时间（ids 的顺序）重排，并过滤已下架的博客。
	byID := make(map[uint64]int, len(blogs))
	for i, b := range blogs {
		byID[b.ID] = i
	}
	ordered := make([]*vo.BlogVO, 0, len(blogs))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			continue
		}
		if blogs[i].Visibility != enums.VisibilityActive {
			continue
		}
		ordered = append(ordered, vo.MapBlogToVO(blogs[i]))
	}

	return &vo.BlogListVO{
		Blogs: ordered,
		Total: int64(len(ordered)),
	}, nil
}

// ToggleCommentLike 实现评论点赞的切换。
// 评论点赞数不进入博客详情缓存，无需清扫。
func (s *engagementService) ToggleCommentLike(ctx context.Context, commentID uint64, userID string) (bool, error) {
	if _, err := s.commentRepo.GetCommentByID(ctx, commentID); err != nil {
		return false, err
	}

	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, txErr := s.engageRepo.RemoveCommentLike(ctx, tx, commentID, userID)
		if txErr != nil {
			return txErr
		}
		if removed {
			return nil
		}
		if txErr := s.engageRepo.AddCommentLike(ctx, tx, commentID, userID); txErr != nil {
			return txErr
		}
		liked = true
		return nil
	})
	if err != nil {
		s.logger.Error("切换评论点赞失败", zap.Uint64("commentID", commentID), zap.Error(err))
		return false, err
	}
	return liked, nil
}
