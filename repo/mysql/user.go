package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// UserRepository 定义了用户账号数据的持久化操作接口。
type UserRepository interface {
	// CreateUser 持久化一个新用户。
	// - 邮箱唯一索引冲突时返回 myErrors.ErrEmailTaken。
	CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error

	// GetUserByID 根据 ID 检索用户，未找到时返回 commonerrors.ErrRepoNotFound。
	GetUserByID(ctx context.Context, id string) (*entities.User, error)

	// GetUserByEmail 根据邮箱检索用户，未找到时返回 commonerrors.ErrRepoNotFound。
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)

	// GetUserByProvider 根据第三方身份 (provider, providerID) 检索用户。
	GetUserByProvider(ctx context.Context, provider, providerID string) (*entities.User, error)

	// GetUserByResetTokenHash 根据重置令牌哈希检索用户。
	GetUserByResetTokenHash(ctx context.Context, tokenHash string) (*entities.User, error)

	// UpdateUser 更新用户的指定字段。
	UpdateUser(ctx context.Context, db *gorm.DB, id string, updates map[string]interface{}) error

	// SetVerified 将用户标记为已验证。
	SetVerified(ctx context.Context, id string) error

	// SetBanned 更新用户封禁状态及相关元信息。
	SetBanned(ctx context.Context, db *gorm.DB, id string, banned bool, bannedAt *time.Time, reason *string) error

	// DeleteUser 软删除用户账号。
	DeleteUser(ctx context.Context, db *gorm.DB, id string) error

	// ListUsers 分页查询用户列表，可按用户名或邮箱模糊筛选，供管理端使用。
	ListUsers(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error)
}

type userRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewUserRepository 是 userRepository 的构造函数。
func NewUserRepository(db *gorm.DB, logger *core.ZapLogger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

// CreateUser 实现用户插入。
// 依赖 gorm.Config{TranslateError: true} 将驱动的唯一键冲突翻译为 gorm.ErrDuplicatedKey，
// 由数据库唯一索引兜底并发注册，而不是"先查再插"。
func (r *userRepository) CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error {
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return myErrors.ErrEmailTaken
		}
		r.logger.Error("创建用户失败", zap.String("email", user.Email), zap.Error(err))
		return err
	}
	return nil
}

// GetUserByID 实现按 ID 查询用户。
func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取用户失败", zap.String("userID", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 实现按邮箱查询用户。
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据邮箱获取用户失败", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// GetUserByProvider 实现按第三方身份查询用户。
func (r *userRepository) GetUserByProvider(ctx context.Context, provider, providerID string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据第三方身份获取用户失败", zap.String("provider", provider), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// GetUserByResetTokenHash 实现按重置令牌哈希查询用户。
// 令牌明文只存在于发给用户的邮件里，数据库只保存 SHA-256 哈希。
func (r *userRepository) GetUserByResetTokenHash(ctx context.Context, tokenHash string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("reset_token_hash = ?", tokenHash).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据重置令牌哈希获取用户失败", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// UpdateUser 实现用户字段更新。
func (r *userRepository) UpdateUser(ctx context.Context, db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新用户失败", zap.String("userID", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// SetVerified 实现验证标记更新。
func (r *userRepository) SetVerified(ctx context.Context, id string) error {
	return r.UpdateUser(ctx, r.db, id, map[string]interface{}{"is_verified": true})
}

// SetBanned 实现封禁状态更新。
func (r *userRepository) SetBanned(ctx context.Context, db *gorm.DB, id string, banned bool, bannedAt *time.Time, reason *string) error {
	return r.UpdateUser(ctx, db, id, map[string]interface{}{
		"is_banned":  banned,
		"banned_at":  bannedAt,
		"ban_reason": reason,
	})
}

// ListUsers 实现管理端的用户分页查询。
func (r *userRepository) ListUsers(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entities.User{})
	countQuery := r.db.WithContext(ctx).Model(&entities.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
		countQuery = countQuery.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
	}

	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("用户列表：计数查询失败", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return users, 0, nil
	}

	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		r.logger.Error("用户列表：列表查询失败", zap.Error(err))
		return nil, 0, err
	}
	return users, totalCount, nil
}

// DeleteUser 实现用户软删除。
func (r *userRepository) DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{})
	if result.Error != nil {
		r.logger.Error("删除用户失败", zap.String("userID", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}
