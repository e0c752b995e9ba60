package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// OTPRepository 定义邮箱验证码的存取接口。
// - 与 Cache 不同，验证码路径 fail-closed: Redis 出错时验证必须失败，
//   绝不能把后端故障当成"验证通过"。
type OTPRepository interface {
	// StoreCode 存储验证码并设置有效期，覆盖同邮箱的旧验证码。
	StoreCode(ctx context.Context, email string, code string) error

	// VerifyAndConsume 校验验证码，成功后立刻删除（单次有效）。
	// - 验证码不存在、不匹配或 Redis 出错时返回 myErrors.ErrInvalidOTP。
	VerifyAndConsume(ctx context.Context, email string, code string) error
}

type otpRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewOTPRepository 创建 OTPRepository 实例。
func NewOTPRepository(redisClient *redis.Client, logger *core.ZapLogger) OTPRepository {
	return &otpRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func otpKey(email string) string {
	return constant.EmailOTPPrefix + email
}

// StoreCode 实现验证码写入。
func (r *otpRepository) StoreCode(ctx context.Context, email string, code string) error {
	if err := r.redisClient.Set(ctx, otpKey(email), code, constant.EmailOTPTTL).Err(); err != nil {
		r.logger.Error("存储邮箱验证码失败", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("存储邮箱验证码失败: %w", err)
	}
	return nil
}

// VerifyAndConsume 实现验证码校验与消费。
// 用 GETDEL 原子地取出并删除，保证同一验证码只能成功一次。
func (r *otpRepository) VerifyAndConsume(ctx context.Context, email string, code string) error {
	stored, err := r.redisClient.GetDel(ctx, otpKey(email)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("读取邮箱验证码失败", zap.String("email", email), zap.Error(err))
		}
		return myErrors.ErrInvalidOTP
	}

	// 常量时间比较，避免时序侧信道
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return myErrors.ErrInvalidOTP
	}
	return nil
}
