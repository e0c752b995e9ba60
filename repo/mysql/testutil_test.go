package mysql

import (
	"testing"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
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
