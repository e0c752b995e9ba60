package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// BlogService 定义了处理博客核心业务逻辑的接口。
type BlogService interface {
	// CreateBlog 处理用户发布新博客的业务流程。
	// - 写入数据库成功后同步清扫列表缓存，再异步发送 Kafka 事件。
	CreateBlog(ctx context.Context, authorID string, req *dto.CreateBlogRequest) (*vo.BlogVO, error)

	// GetBlogByID 获取单篇博客详情，走 "blog:<id>" 读穿缓存。
	// - 已下架的博客对公众返回 NotFound，作者本人与管理端可见。
	// - 公开读命中时异步累加 Redis 浏览量。
	GetBlogByID(ctx context.Context, blogID uint64, viewerID string, isAdmin bool) (*vo.BlogDetailVO, error)

	// ListBlogs 分页查询公开博客列表，以查询参数指纹为键走读穿缓存。
	ListBlogs(ctx context.Context, query *dto.ListBlogsQuery) (*vo.BlogListVO, error)

	// ListBlogsByAuthor 查询指定作者的博客列表（作者本人可见已下架博客）。
	ListBlogsByAuthor(ctx context.Context, authorID string, page *dto.PaginationQuery) (*vo.BlogListVO, error)

	// UpdateBlog 更新博客内容，仅作者本人可操作。
	// - 更新成功后同步清扫列表缓存并删除详情缓存。
	UpdateBlog(ctx context.Context, blogID uint64, userID string, req *dto.UpdateBlogRequest) (*vo.BlogVO, error)

	// DeleteBlog 永久删除博客，仅作者本人可操作。
	// - 在事务中级联清理评论、举报与互动记录，之后同步清扫缓存。
	DeleteBlog(ctx context.Context, blogID uint64, userID string) error

	// UploadBlogCover 上传博客封面图到对象存储，返回访问 URL。
	UploadBlogCover(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (string, error)

	// GetPopularBlogs 获取热门博客榜单，优先读取预热缓存。
	GetPopularBlogs(ctx context.Context, limit int) (*vo.BlogListVO, error)
}

type blogService struct {
	db           *gorm.DB
	blogRepo     mysql.BlogRepository
	commentRepo  mysql.CommentRepository
	reportRepo   mysql.ReportRepository
	engageRepo   mysql.EngagementRepository
	cache        redis.Cache
	blogViewRepo redis.BlogViewRepository
	cosClient    dependencies.COSClientInterface
	kafkaSvc     *producer.KafkaProducer
	logger       *core.ZapLogger
}

// NewBlogService 是 blogService 的构造函数，通过依赖注入初始化服务实例。
// - 缓存以接口注入，便于单元测试和组件替换。
func NewBlogService(
	db *gorm.DB,
	blogRepo mysql.BlogRepository,
	commentRepo mysql.CommentRepository,
	reportRepo mysql.ReportRepository,
	engageRepo mysql.EngagementRepository,
	cache redis.Cache,
	blogViewRepo redis.BlogViewRepository,
	cosClient dependencies.COSClientInterface,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) BlogService {
	return &blogService{
		db:           db,
		blogRepo:     blogRepo,
		commentRepo:  commentRepo,
		reportRepo:   reportRepo,
		engageRepo:   engageRepo,
		cache:        cache,
		blogViewRepo: blogViewRepo,
		cosClient:    cosClient,
		kafkaSvc:     kafkaSvc,
		logger:       logger,
	}
}

// listCacheKey 从查询参数构建列表缓存键。
// - 参数先归一化（页码/每页数量回退默认值）再计算指纹，
//   语义相同的请求必须命中同一个键。
func listCacheKey(query *dto.ListBlogsQuery) string {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "newest"
	}
	return redis.BuildCacheKey(constant.BlogListCachePrefix, map[string]any{
		"page":      page,
		"page_size": pageSize,
		"category":  query.Category,
		"tag":       query.Tag,
		"search":    query.Search,
		"author_id": query.AuthorID,
		"sort_by":   sortBy,
	})
}

// invalidateBlogCaches 在博客写操作提交后同步清扫相关缓存。
// - 列表缓存按 "blogs:*" 模式全量清扫，避免逐键追踪受影响的查询组合。
// - 清扫在响应返回前完成，保证写后读不会命中陈旧数据。
func (s *blogService) invalidateBlogCaches(ctx context.Context, blogID uint64) {
	if n := s.cache.DeleteByPattern(ctx, constant.BlogListInvalidatePattern); n > 0 {
		s.logger.Debug("清扫博客列表缓存", zap.Int64("deleted", n), zap.Uint64("blogID", blogID))
	}
	s.cache.Delete(ctx, fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blogID))
}

// generateCoverObjectKey 创建封面图的唯一 COS 对象键。
func (s *blogService) generateCoverObjectKey(originalFilename string, userID string) string {
	datePrefix := time.Now().Format("20060102")
	extension := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s%s/%s_%s%s",
		constant.COSObjectKeyPrefixBlogCovers,
		datePrefix,
		userID,
		uuid.NewString(),
		extension,
	)
}

// CreateBlog 实现博客创建。
func (s *blogService) CreateBlog(ctx context.Context, authorID string, req *dto.CreateBlogRequest) (*vo.BlogVO, error) {
	blog := &entities.Blog{
		Title:           req.Title,
		Content:         req.Content,
		AuthorID:        authorID,
		Category:        req.Category,
		Tags:            req.Tags,
		CoverImageURL:   req.CoverURL,
		Visibility:      enums.VisibilityActive,
		CommentsEnabled: true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.blogRepo.CreateBlog(ctx, tx, blog)
	})
	if err != nil {
		s.logger.Error("创建博客失败", zap.String("authorID", authorID), zap.Error(err))
		return nil, err
	}

	// 新博客会出现在列表查询结果中，同步清扫列表缓存。
	s.invalidateBlogCaches(ctx, blog.ID)

	go func(b *entities.Blog) {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendBlogCreatedEvent(bgCtx, producer.BlogEventData{
			ID:        b.ID,
			Title:     b.Title,
			AuthorID:  b.AuthorID,
			Category:  b.Category,
			Tags:      b.Tags,
			CreatedAt: b.CreatedAt.UnixMilli(),
		}); kafkaErr != nil {
			s.logger.Error("发送博客创建事件失败", zap.Error(kafkaErr), zap.Uint64("blogID", b.ID))
		}
	}(blog)

	return vo.MapBlogToVO(blog), nil
}

// GetBlogByID 实现博客详情的读穿缓存查询。
func (s *blogService) GetBlogByID(ctx context.Context, blogID uint64, viewerID string, isAdmin bool) (*vo.BlogDetailVO, error) {
	cacheKey := fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blogID)

	// 1. 尝试命中缓存。缓存只存放对公众可见的内容，命中即可直接返回。
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var detail vo.BlogDetailVO
		if unmarshalErr := json.Unmarshal([]byte(cached), &detail); unmarshalErr == nil {
			s.recordView(blogID)
			return &detail, nil
		}
		s.logger.Warn("博客详情缓存内容解析失败，回退数据库", zap.String("key", cacheKey))
	}

	// 2. 缓存未命中，回源数据库。
	blog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	// 3. 可见性裁决：已下架的博客只有作者本人和管理端可见。
	if blog.Visibility == enums.VisibilityRemoved && !isAdmin && blog.AuthorID != viewerID {
		return nil, commonerrors.ErrRepoNotFound
	}

	detail, err := s.buildBlogDetail(ctx, blog)
	if err != nil {
		return nil, err
	}

	// 4. 只回填公开可见的内容，避免把仅作者可见的已下架博客写进公共缓存。
	if blog.Visibility == enums.VisibilityActive {
		if payload, marshalErr := json.Marshal(detail); marshalErr == nil {
			s.cache.Set(ctx, cacheKey, string(payload), constant.BlogDetailCacheTTL)
		}
		s.recordView(blogID)
	}

	return detail, nil
}

// buildBlogDetail 组装博客详情 VO，附带互动计数。
func (s *blogService) buildBlogDetail(ctx context.Context, blog *entities.Blog) (*vo.BlogDetailVO, error) {
	likeCount, err := s.engageRepo.CountBlogLikes(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	dislikeCount, err := s.engageRepo.CountBlogDislikes(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	commentCount, err := s.commentRepo.CountCommentsByBlogID(ctx, blog.ID)
	if err != nil {
		return nil, err
	}

	return &vo.BlogDetailVO{
		BlogVO:       *vo.MapBlogToVO(blog),
		Content:      blog.Content,
		LikeCount:    likeCount,
		DislikeCount: dislikeCount,
		CommentCount: commentCount,
	}, nil
}

// recordView 异步累加浏览量。浏览计数不应阻塞读请求，也不参与其错误路径。
// 匿名访问同样计数，浏览量统计的是读取次数而不是读者身份。
func (s *blogService) recordView(blogID uint64) {
	go s.blogViewRepo.IncrementViewCount(context.Background(), blogID)
}

// ListBlogs 实现公开列表的读穿缓存查询。
func (s *blogService) ListBlogs(ctx context.Context, query *dto.ListBlogsQuery) (*vo.BlogListVO, error) {
	cacheKey := listCacheKey(query)

	// 1. 尝试命中缓存。
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var list vo.BlogListVO
		if unmarshalErr := json.Unmarshal([]byte(cached), &list); unmarshalErr == nil {
			list.Source = "cache"
			return &list, nil
		}
		s.logger.Warn("博客列表缓存内容解析失败，回退数据库", zap.String("key", cacheKey))
	}

	// 2. 回源数据库。
	blogs, total, err := s.blogRepo.ListPublicBlogs(ctx, query)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	list := &vo.BlogListVO{
		Blogs:    vo.MapBlogsToVOs(blogs),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Source:   "db",
	}

	// 3. 回填缓存。Source 不写入缓存，命中时由读路径重新标记。
	cachedCopy := *list
	cachedCopy.Source = ""
	if payload, marshalErr := json.Marshal(&cachedCopy); marshalErr == nil {
		s.cache.Set(ctx, cacheKey, string(payload), constant.BlogListCacheTTL)
	}

	return list, nil
}

// ListBlogsByAuthor 实现作者视角的博客列表查询，不走缓存。
func (s *blogService) ListBlogsByAuthor(ctx context.Context, authorID string, page *dto.PaginationQuery) (*vo.BlogListVO, error) {
	blogs, total, err := s.blogRepo.ListBlogsByAuthor(ctx, authorID, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}
	return &vo.BlogListVO{
		Blogs:    vo.MapBlogsToVOs(blogs),
		Total:    total,
		Page:     page.Offset()/page.Limit() + 1,
		PageSize: page.Limit(),
	}, nil
}

// UpdateBlog 实现博客更新。
func (s *blogService) UpdateBlog(ctx context.Context, blogID uint64, userID string, req *dto.UpdateBlogRequest) (*vo.BlogVO, error) {
	blog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != userID {
		return nil, myErrors.ErrForbidden
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		tagsJSON, marshalErr := json.Marshal(*req.Tags)
		if marshalErr != nil {
			return nil, marshalErr
		}
		updates["tags"] = string(tagsJSON)
	}
	if req.CoverURL != nil {
		updates["cover_image_url"] = *req.CoverURL
	}
	if req.CommentsEnabled != nil {
		updates["comments_enabled"] = *req.CommentsEnabled
	}

	if err := s.blogRepo.UpdateBlog(ctx, blogID, updates); err != nil {
		return nil, err
	}

	// 更新会改变列表与详情的展示内容，同步清扫缓存。
	s.invalidateBlogCaches(ctx, blogID)

	updated, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return vo.MapBlogToVO(updated), nil
}

// DeleteBlog 实现博客的永久删除及级联清理。
func (s *blogService) DeleteBlog(ctx context.Context, blogID uint64, userID string) error {
	blog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog.AuthorID != userID {
		return myErrors.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 级联删除评论及其点赞记录。评论 ID 在事务内查询，与删除看到同一快照。
		commentIDs, repoErr := s.commentRepo.ListCommentIDsByBlogID(ctx, tx, blogID)
		if repoErr != nil {
			return fmt.Errorf("查询博客评论失败: %w", repoErr)
		}
		if repoErr := s.engageRepo.DeleteCommentLikesByCommentIDs(ctx, tx, commentIDs); repoErr != nil {
			return fmt.Errorf("删除评论点赞记录失败: %w", repoErr)
		}
		if repoErr := s.commentRepo.DeleteCommentsByBlogID(ctx, tx, blogID); repoErr != nil {
			return fmt.Errorf("删除博客评论失败: %w", repoErr)
		}

		// 2. 级联删除举报与互动记录。
		if repoErr := s.reportRepo.DeleteReportsByBlogID(ctx, tx, blogID); repoErr != nil {
			return fmt.Errorf("删除博客举报记录失败: %w", repoErr)
		}
		if repoErr := s.engageRepo.DeleteByBlogID(ctx, tx, blogID); repoErr != nil {
			return fmt.Errorf("删除博客互动记录失败: %w", repoErr)
		}

		// 3. 删除博客主记录。
		if repoErr := s.blogRepo.HardDeleteBlog(ctx, tx, blogID); repoErr != nil {
			return fmt.Errorf("删除博客主记录失败: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("删除博客事务失败", zap.Uint64("blogID", blogID), zap.Error(err))
		return err
	}

	// 事务提交后同步清扫缓存，再异步清理封面与通知下游。
	s.invalidateBlogCaches(ctx, blogID)

	if blog.CoverObjectKey != "" {
		go func(objectKey string) {
			if cosErr := s.cosClient.DeleteObject(context.Background(), objectKey); cosErr != nil {
				s.logger.Error("删除博客封面对象失败", zap.String("objectKey", objectKey), zap.Error(cosErr))
			}
		}(blog.CoverObjectKey)
	}

	go func(id uint64) {
		if kafkaErr := s.kafkaSvc.SendBlogDeletedEvent(context.Background(), id); kafkaErr != nil {
			s.logger.Error("发送博客删除事件失败", zap.Error(kafkaErr), zap.Uint64("blogID", id))
		}
	}(blogID)

	return nil
}

// UploadBlogCover 实现封面图上传。
func (s *blogService) UploadBlogCover(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("打开封面文件失败", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return "", fmt.Errorf("打开封面文件失败: %w", err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := s.generateCoverObjectKey(fileHeader.Filename, userID)
	imageURL, err := s.cosClient.UploadFile(ctx, objectKey, file, fileHeader.Size, contentType)
	if err != nil {
		s.logger.Error("上传封面到 COS 失败", zap.String("objectKey", objectKey), zap.Error(err))
		return "", fmt.Errorf("上传封面失败: %w", err)
	}
	return imageURL, nil
}

// GetPopularBlogs 实现热门榜单查询。
// 榜单由定时任务预热到固定键，这里的回源是预热任务未跑时的兜底。
func (s *blogService) GetPopularBlogs(ctx context.Context, limit int) (*vo.BlogListVO, error) {
	if cached, err := s.cache.Get(ctx, constant.PopularBlogsCacheKey); err == nil {
		var list vo.BlogListVO
		if unmarshalErr := json.Unmarshal([]byte(cached), &list); unmarshalErr == nil {
			list.Source = "cache"
			return &list, nil
		}
	}

	blogs, err := s.blogRepo.ListTopViewedBlogs(ctx, limit)
	if err != nil {
		return nil, err
	}
	list := &vo.BlogListVO{
		Blogs:  vo.MapBlogsToVOs(blogs),
		Total:  int64(len(blogs)),
		Source: "db",
	}

	cachedCopy := *list
	cachedCopy.Source = ""
	if payload, marshalErr := json.Marshal(&cachedCopy); marshalErr == nil {
		s.cache.Set(ctx, constant.PopularBlogsCacheKey, string(payload), constant.PopularBlogsCacheTTL)
	}
	return list, nil
}
