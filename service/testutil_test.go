package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// setupTestDB 打开一个内存 SQLite 并迁移全部实体。
// - TranslateError 与生产配置保持一致，重复键去重语义依赖它。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存 SQLite 的每个连接都是独立的数据库，连接池收敛到单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.Blog{},
		&entities.Comment{},
		&entities.Report{},
		&entities.User{},
		&entities.Profile{},
		&entities.Admin{},
		&entities.AdminActionLog{},
		&entities.BlogLike{},
		&entities.BlogDislike{},
		&entities.Bookmark{},
		&entities.CommentLike{},
		&entities.Follow{},
	))
	return db
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)
	return logger
}

// fakeCache 是 Cache 接口的内存实现，模式清扫按前缀匹配 "prefix*" 形式的模式。
type fakeCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.store[key]
	if !ok {
		return "", myErrors.ErrCacheMiss
	}
	return val, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
}

func (c *fakeCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var deleted int64
	for key := range c.store {
		if strings.HasPrefix(key, prefix) {
			delete(c.store, key)
			deleted++
		}
	}
	return deleted
}

func (c *fakeCache) IncrCounter(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, _ := strconv.ParseInt(c.store[key], 10, 64)
	val++
	c.store[key] = strconv.FormatInt(val, 10)
	return val, nil
}

func (c *fakeCache) Expire(_ context.Context, _ string, _ time.Duration) {}

func (c *fakeCache) contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

// createTestUser 插入一个已验证的测试用户。
func createTestUser(t *testing.T, db *gorm.DB, id string) *entities.User {
	t.Helper()
	user := &entities.User{
		ID:         id,
		Username:   "user-" + id,
		Email:      id + "@example.com",
		IsVerified: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestBlog 插入一篇测试博客。
func createTestBlog(t *testing.T, db *gorm.DB, authorID string, visibility enums.Visibility, commentsEnabled bool) *entities.Blog {
	t.Helper()
	blog := &entities.Blog{
		Title:           "测试博客",
		Content:         "正文内容",
		AuthorID:        authorID,
		Category:        "技术",
		Visibility:      visibility,
		CommentsEnabled: commentsEnabled,
	}
	require.NoError(t, db.Create(blog).Error)
	return blog
}
