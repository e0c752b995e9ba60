package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// ProfileRepository 定义了用户资料数据的持久化操作接口。
type ProfileRepository interface {
	// GetProfileByUserID 根据用户 ID 检索资料，未找到时返回 commonerrors.ErrRepoNotFound。
	GetProfileByUserID(ctx context.Context, userID string) (*entities.Profile, error)

	// UpsertProfile 创建或更新用户资料。
	// - 以 user_id 唯一索引为冲突键，存在则覆盖可编辑字段。
	UpsertProfile(ctx context.Context, profile *entities.Profile) error

	// DeleteProfileByUserID 删除用户资料，用于账号删除时的级联清理。
	DeleteProfileByUserID(ctx context.Context, db *gorm.DB, userID string) error
}

type profileRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewProfileRepository 是 profileRepository 的构造函数。
func NewProfileRepository(db *gorm.DB, logger *core.ZapLogger) ProfileRepository {
	return &profileRepository{db: db, logger: logger}
}

// GetProfileByUserID 实现按用户 ID 查询资料。
func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据用户 ID 获取资料失败", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile 实现资料的插入或覆盖更新。
func (r *profileRepository) UpsertProfile(ctx context.Context, profile *entities.Profile) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "bio", "website", "location", "updated_at"}),
		}).
		Create(profile).Error
	if err != nil {
		r.logger.Error("写入用户资料失败", zap.String("userID", profile.UserID), zap.Error(err))
		return err
	}
	return nil
}

// DeleteProfileByUserID 实现资料的级联删除。
func (r *profileRepository) DeleteProfileByUserID(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&entities.Profile{}).Error
}
