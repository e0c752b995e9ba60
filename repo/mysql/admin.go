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

// AdminRepository 定义了管理员账号数据的持久化操作接口。
type AdminRepository interface {
	// GetAdminByID 根据 ID 检索管理员，未找到时返回 commonerrors.ErrRepoNotFound。
	GetAdminByID(ctx context.Context, id uint64) (*entities.Admin, error)

	// GetAdminByUsername 根据用户名检索管理员。
	GetAdminByUsername(ctx context.Context, username string) (*entities.Admin, error)

	// CreateAdmin 持久化一个新管理员，用于初始化种子数据。
	CreateAdmin(ctx context.Context, admin *entities.Admin) error
}

type adminRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewAdminRepository 是 adminRepository 的构造函数。
func NewAdminRepository(db *gorm.DB, logger *core.ZapLogger) AdminRepository {
	return &adminRepository{db: db, logger: logger}
}

// GetAdminByID 实现按 ID 查询管理员。
func (r *adminRepository) GetAdminByID(ctx context.Context, id uint64) (*entities.Admin, error) {
	var admin entities.Admin
	err := r.db.WithContext(ctx).First(&admin, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取管理员失败", zap.Uint64("adminID", id), zap.Error(err))
		return nil, err
	}
	return &admin, nil
}

// GetAdminByUsername 实现按用户名查询管理员。
func (r *adminRepository) GetAdminByUsername(ctx context.Context, username string) (*entities.Admin, error) {
	var admin entities.Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据用户名获取管理员失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &admin, nil
}

// CreateAdmin 实现管理员插入。
func (r *adminRepository) CreateAdmin(ctx context.Context, admin *entities.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		r.logger.Error("创建管理员失败", zap.String("username", admin.Username), zap.Error(err))
		return err
	}
	return nil
}
