package service

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// CommentService 定义了评论相关的业务逻辑接口。
type CommentService interface {
	// CreateComment 发表评论或回复。
	// - 博客不存在/已下架返回 NotFound，博客关闭评论时返回 myErrors.ErrCommentsDisabled。
	// - 回复时父评论必须属于同一博客。
	CreateComment(ctx context.Context, blogID uint64, authorID string, req *dto.CreateCommentRequest) (*vo.CommentVO, error)

	// ReplyToComment 回复指定评论，所属博客由父评论决定。
	ReplyToComment(ctx context.Context, parentID uint64, authorID string, content string) (*vo.CommentVO, error)

	// ListComments 查询博客的评论树。
	ListComments(ctx context.Context, blogID uint64) (*vo.CommentListVO, error)

	// UpdateComment 编辑评论内容，仅作者本人可操作。
	UpdateComment(ctx context.Context, commentID uint64, userID string, req *dto.UpdateCommentRequest) (*vo.CommentVO, error)

	// DeleteComment 删除评论及其整棵回复子树。
	// - 评论作者与博客作者都有删除权限。
	// - 子树 ID 通过显式工作队列收集，连同点赞记录在一个事务中删除。
	DeleteComment(ctx context.Context, commentID uint64, userID string) error
}

type commentService struct {
	db          *gorm.DB
	blogRepo    mysql.BlogRepository
	commentRepo mysql.CommentRepository
	engageRepo  mysql.EngagementRepository
	cache       redis.Cache
	logger      *core.ZapLogger
}

// NewCommentService 是 commentService 的构造函数。
func NewCommentService(db *gorm.DB, blogRepo mysql.BlogRepository, commentRepo mysql.CommentRepository, engageRepo mysql.EngagementRepository, cache redis.Cache, logger *core.ZapLogger) CommentService {
	return &commentService{
		db:          db,
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		engageRepo:  engageRepo,
		cache:       cache,
		logger:      logger,
	}
}

// invalidateBlogDetail 评论增删提交后同步删除详情缓存。
// 详情缓存内嵌了评论计数，删除在响应返回前完成。
func (s *commentService) invalidateBlogDetail(ctx context.Context, blogID uint64) {
	s.cache.Delete(ctx, fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blogID))
}

// CreateComment 实现评论发表。
func (s *commentService) CreateComment(ctx context.Context, blogID uint64, authorID string, req *dto.CreateCommentRequest) (*vo.CommentVO, error) {
	blog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Visibility != enums.VisibilityActive {
		return nil, commonerrors.ErrRepoNotFound
	}
	if !blog.CommentsEnabled {
		return nil, myErrors.ErrCommentsDisabled
	}

	if req.ParentID != nil {
		parent, parentErr := s.commentRepo.GetCommentByID(ctx, *req.ParentID)
		if parentErr != nil {
			return nil, parentErr
		}
		if parent.BlogID != blogID {
			// 回复必须挂在同一博客的评论下。
			return nil, commonerrors.ErrRepoNotFound
		}
	}

	comment := &entities.Comment{
		BlogID:   blogID,
		AuthorID: authorID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}
	if err := s.commentRepo.CreateComment(ctx, s.db, comment); err != nil {
		s.logger.Error("创建评论失败", zap.Uint64("blogID", blogID), zap.Error(err))
		return nil, err
	}

	s.invalidateBlogDetail(ctx, blogID)
	return vo.MapCommentToVO(comment), nil
}

// ReplyToComment 实现评论回复。
func (s *commentService) ReplyToComment(ctx context.Context, parentID uint64, authorID string, content string) (*vo.CommentVO, error) {
	parent, err := s.commentRepo.GetCommentByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	req := &dto.CreateCommentRequest{
		Content:  content,
		ParentID: &parentID,
	}
	return s.CreateComment(ctx, parent.BlogID, authorID, req)
}

// ListComments 实现评论树查询。
func (s *commentService) ListComments(ctx context.Context, blogID uint64) (*vo.CommentListVO, error) {
	blog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Visibility != enums.VisibilityActive {
		return nil, commonerrors.ErrRepoNotFound
	}

	comments, err := s.commentRepo.ListCommentsByBlogID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	tree := vo.BuildCommentTree(comments)

	// 填充点赞数。评论数量在单篇博客维度可控，逐条计数可接受。
	var fillLikes func(nodes []*vo.CommentVO) error
	fillLikes = func(nodes []*vo.CommentVO) error {
		for _, node := range nodes {
			count, countErr := s.engageRepo.CountCommentLikes(ctx, node.ID)
			if countErr != nil {
				return countErr
			}
			node.LikeCount = count
			if err := fillLikes(node.Replies); err != nil {
				return err
			}
		}
		return nil
	}
	if err := fillLikes(tree); err != nil {
		return nil, err
	}

	return &vo.CommentListVO{
		Comments: tree,
		Total:    int64(len(comments)),
	}, nil
}

// UpdateComment 实现评论编辑。
func (s *commentService) UpdateComment(ctx context.Context, commentID uint64, userID string, req *dto.UpdateCommentRequest) (*vo.CommentVO, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, myErrors.ErrForbidden
	}

	if err := s.commentRepo.UpdateCommentContent(ctx, commentID, req.Content); err != nil {
		return nil, err
	}
	comment.Content = req.Content
	return vo.MapCommentToVO(comment), nil
}

// DeleteComment 实现评论子树删除。
func (s *commentService) DeleteComment(ctx context.Context, commentID uint64, userID string) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	// 评论作者或所属博客作者可删除。
	if comment.AuthorID != userID {
		blog, blogErr := s.blogRepo.GetBlogByID(ctx, comment.BlogID)
		if blogErr != nil {
			return blogErr
		}
		if blog.AuthorID != userID {
			return myErrors.ErrForbidden
		}
	}

	// 子树收集与删除在同一事务中执行，收集到的 ID 集与被删除的行一致。
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, repoErr := s.commentRepo.CollectSubtreeIDs(ctx, tx, commentID)
		if repoErr != nil {
			return repoErr
		}
		if repoErr := s.engageRepo.DeleteCommentLikesByCommentIDs(ctx, tx, ids); repoErr != nil {
			return fmt.Errorf("删除评论点赞记录失败: %w", repoErr)
		}
		if repoErr := s.commentRepo.DeleteCommentsByIDs(ctx, tx, ids); repoErr != nil {
			return fmt.Errorf("删除评论子树失败: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("删除评论事务失败", zap.Uint64("commentID", commentID), zap.Error(err))
		return err
	}

	s.invalidateBlogDetail(ctx, comment.BlogID)
	return nil
}
