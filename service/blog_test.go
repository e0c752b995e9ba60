package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// fakeViewRepo 在内存中记录浏览量累加，供断言异步计数路径。
type fakeViewRepo struct {
	mu     sync.Mutex
	counts map[uint64]int64
}

func newFakeViewRepo() *fakeViewRepo {
	return &fakeViewRepo{counts: make(map[uint64]int64)}
}

func (f *fakeViewRepo) IncrementViewCount(_ context.Context, blogID uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[blogID]++
}

func (f *fakeViewRepo) GetAllViewCounts(_ context.Context) (map[uint64]int64, error) {
	return map[uint64]int64{}, nil
}

func (f *fakeViewRepo) DeleteViewCounts(_ context.Context, _ []uint64) error { return nil }

func (f *fakeViewRepo) views(blogID uint64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[blogID]
}

func newBlogService(t *testing.T, db *gorm.DB, cache *fakeCache) BlogService {
	return newBlogServiceWithViews(t, db, cache, newFakeViewRepo())
}

func newBlogServiceWithViews(t *testing.T, db *gorm.DB, cache *fakeCache, views *fakeViewRepo) BlogService {
	t.Helper()
	logger := newTestLogger(t)
	return NewBlogService(
		db,
		mysql.NewBlogRepository(db, logger),
		mysql.NewCommentRepository(db, logger),
		mysql.NewReportRepository(db, logger),
		mysql.NewEngagementRepository(db, logger),
		cache,
		views,
		nil, // 对象存储仅封面路径使用
		nil, // Kafka 未配置时服务降级为不发事件
		logger,
	)
}

func TestListBlogs_ReadThroughCache(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	ctx := context.Background()

	createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	query := &dto.ListBlogsQuery{Page: 1, PageSize: 10}

	first, err := svc.ListBlogs(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "db", first.Source)
	assert.Equal(t, int64(1), first.Total)

	// 第二次相同查询命中缓存
	second, err := svc.ListBlogs(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "cache", second.Source)
	assert.Equal(t, int64(1), second.Total)

	// 语义相同但字段顺序/缺省值不同的查询命中同一个键
	equivalent, err := svc.ListBlogs(ctx, &dto.ListBlogsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "cache", equivalent.Source)
}

func TestCreateBlog_SweepsListCache(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	ctx := context.Background()

	query := &dto.ListBlogsQuery{Page: 1, PageSize: 10}
	_, err := svc.ListBlogs(ctx, query)
	require.NoError(t, err)

	_, err = svc.CreateBlog(ctx, "author-1", &dto.CreateBlogRequest{
		Title:    "新文章",
		Content:  "正文",
		Category: "技术",
	})
	require.NoError(t, err)

	// 写入后列表缓存被清扫，下一次读回源并看到新博客
	list, err := svc.ListBlogs(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "db", list.Source)
	assert.Equal(t, int64(1), list.Total)
}

func TestGetBlogByID_RemovedOnlyVisibleToAuthorOrAdmin(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityRemoved, true)

	// 公众视角: 已下架等同于不存在
	_, err := svc.GetBlogByID(ctx, blog.ID, "stranger", false)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	// 作者本人可见
	detail, err := svc.GetBlogByID(ctx, blog.ID, "author-1", false)
	require.NoError(t, err)
	assert.Equal(t, blog.ID, detail.ID)

	// 管理端可见
	_, err = svc.GetBlogByID(ctx, blog.ID, "", true)
	require.NoError(t, err)

	// 仅作者可见的内容不允许进入公共缓存
	detailKey := fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blog.ID)
	assert.False(t, cache.contains(detailKey))
}

func TestGetBlogByID_ActiveBlogIsCached(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	detail, err := svc.GetBlogByID(ctx, blog.ID, "viewer-1", false)
	require.NoError(t, err)
	assert.Equal(t, blog.Title, detail.Title)

	detailKey := fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blog.ID)
	assert.True(t, cache.contains(detailKey))

	// 命中缓存的读取返回同样的内容
	cached, err := svc.GetBlogByID(ctx, blog.ID, "viewer-1", false)
	require.NoError(t, err)
	assert.Equal(t, detail.ID, cached.ID)
	assert.Equal(t, detail.Content, cached.Content)
}

func TestUpdateBlog_OnlyAuthorAndCacheInvalidated(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	// 预热详情缓存
	_, err := svc.GetBlogByID(ctx, blog.ID, "viewer-1", false)
	require.NoError(t, err)
	detailKey := fmt.Sprintf("%s%d", constant.BlogDetailCachePrefix, blog.ID)
	require.True(t, cache.contains(detailKey))

	newTitle := "改过的标题"
	_, err = svc.UpdateBlog(ctx, blog.ID, "someone-else", &dto.UpdateBlogRequest{Title: &newTitle})
	assert.ErrorIs(t, err, myErrors.ErrForbidden)

	updated, err := svc.UpdateBlog(ctx, blog.ID, "author-1", &dto.UpdateBlogRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	// 更新后详情缓存被删除，下一次读看到新内容
	assert.False(t, cache.contains(detailKey))
}

func TestDeleteBlog_OwnerCascades(t *testing.T) {
	db := setupTestDB(t)
	logger := newTestLogger(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	commentSvc := newCommentService(t, db, cache)
	engageRepo := mysql.NewEngagementRepository(db, logger)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	comment, err := commentSvc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "评论"})
	require.NoError(t, err)
	require.NoError(t, engageRepo.AddCommentLike(ctx, db, comment.ID, "user-2"))
	require.NoError(t, engageRepo.AddBookmark(ctx, db, blog.ID, "user-2"))

	err = svc.DeleteBlog(ctx, blog.ID, "someone-else")
	assert.ErrorIs(t, err, myErrors.ErrForbidden)

	require.NoError(t, svc.DeleteBlog(ctx, blog.ID, "author-1"))

	_, err = svc.GetBlogByID(ctx, blog.ID, "author-1", false)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	likes, err := engageRepo.CountCommentLikes(ctx, comment.ID)
	require.NoError(t, err)
	assert.Zero(t, likes)

	has, err := engageRepo.HasBookmark(ctx, blog.ID, "user-2")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGetPopularBlogs_FallbackFillsCache(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)
	require.NoError(t, db.Model(blog).Update("view_count", 100).Error)
	createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	first, err := svc.GetPopularBlogs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "db", first.Source)
	require.NotEmpty(t, first.Blogs)
	assert.Equal(t, blog.ID, first.Blogs[0].ID)

	// 兜底查询回填了预热键，下一次直接命中
	second, err := svc.GetPopularBlogs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "cache", second.Source)
}

func TestGetBlogByID_AnonymousViewCounted(t *testing.T) {
	db := setupTestDB(t)
	views := newFakeViewRepo()
	svc := newBlogServiceWithViews(t, db, newFakeCache(), views)
	ctx := context.Background()

	blog := createTestBlog(t, db, "author-1", enums.VisibilityActive, true)

	// 匿名访问同样累加浏览量
	_, err := svc.GetBlogByID(ctx, blog.ID, "", false)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return views.views(blog.ID) == 1
	}, time.Second, 10*time.Millisecond)

	// 缓存命中的读取也计数
	_, err = svc.GetBlogByID(ctx, blog.ID, "", false)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return views.views(blog.ID) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestUpdateBlog_TogglesCommentsGate(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	commentSvc := newCommentService(t, db, cache)
	ctx := context.Background()

	blog, err := svc.CreateBlog(ctx, "author-1", &dto.CreateBlogRequest{
		Title:   "新文章",
		Content: "正文",
	})
	require.NoError(t, err)

	// 新博客默认开放评论
	_, err = commentSvc.CreateComment(ctx, blog.ID, "user-1", &dto.CreateCommentRequest{Content: "第一条"})
	require.NoError(t, err)

	// 作者关闭评论后新的评论被拒绝
	disabled := false
	_, err = svc.UpdateBlog(ctx, blog.ID, "author-1", &dto.UpdateBlogRequest{CommentsEnabled: &disabled})
	require.NoError(t, err)

	_, err = commentSvc.CreateComment(ctx, blog.ID, "user-2", &dto.CreateCommentRequest{Content: "关门后"})
	assert.ErrorIs(t, err, myErrors.ErrCommentsDisabled)

	// 重新开放后恢复正常
	enabled := true
	_, err = svc.UpdateBlog(ctx, blog.ID, "author-1", &dto.UpdateBlogRequest{CommentsEnabled: &enabled})
	require.NoError(t, err)

	_, err = commentSvc.CreateComment(ctx, blog.ID, "user-2", &dto.CreateCommentRequest{Content: "重新开门"})
	require.NoError(t, err)
}

func TestListBlogs_TagFilter(t *testing.T) {
	db := setupTestDB(t)
	cache := newFakeCache()
	svc := newBlogService(t, db, cache)
	ctx := context.Background()

	_, err := svc.CreateBlog(ctx, "author-1", &dto.CreateBlogRequest{
		Title:   "Go 笔记",
		Content: "正文",
		Tags:    []string{"go", "后端"},
	})
	require.NoError(t, err)
	_, err = svc.CreateBlog(ctx, "author-1", &dto.CreateBlogRequest{
		Title:   "前端笔记",
		Content: "正文",
		Tags:    []string{"js"},
	})
	require.NoError(t, err)

	list, err := svc.ListBlogs(ctx, &dto.ListBlogsQuery{Tag: "go"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Blogs, 1)
	assert.Equal(t, "Go 笔记", list.Blogs[0].Title)

	// 不同标签是不同的缓存键，互不串扰
	other, err := svc.ListBlogs(ctx, &dto.ListBlogsQuery{Tag: "js"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.Total)
	assert.Equal(t, "前端笔记", other.Blogs[0].Title)
	assert.Equal(t, "db", other.Source)
}
