package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// AuthService 定义了用户认证相关的业务逻辑接口。
type AuthService interface {
	// Register 处理用户注册流程。
	// - 创建未验证的用户记录，邮箱重复时返回 myErrors.ErrEmailTaken。
	// - 生成 6 位验证码写入 Redis 并发送验证邮件。
	Register(ctx context.Context, req *dto.RegisterRequest) (*vo.UserVO, error)

	// Login 处理邮箱密码登录。
	// - 密码错误与用户不存在统一返回 myErrors.ErrInvalidCredentials，不泄露账号是否存在。
	// - 未验证邮箱返回 myErrors.ErrNotVerified，已封禁返回 myErrors.ErrUserBanned。
	Login(ctx context.Context, req *dto.LoginRequest) (*vo.AuthResultVO, error)

	// VerifyEmail 校验邮箱验证码并将用户标记为已验证。
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*vo.AuthResultVO, error)

	// ResendOTP 重新生成并发送邮箱验证码。
	ResendOTP(ctx context.Context, email string) error

	// ForgotPassword 生成重置令牌并发送重置邮件。
	// - 无论邮箱是否存在都返回成功，防止账号枚举。
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword 校验重置令牌并更新密码。
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error

	// OAuthLogin 处理第三方登录，按 (provider, providerID) 查找或创建用户。
	OAuthLogin(ctx context.Context, req *dto.OAuthLoginRequest) (*vo.AuthResultVO, error)

	// GetCurrentUser 获取当前登录用户信息。
	GetCurrentUser(ctx context.Context, userID string) (*vo.UserVO, error)

	// UpdateCurrentUser 更新当前用户的账号信息（用户名/头像）。
	UpdateCurrentUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*vo.UserVO, error)

	// DeleteCurrentUser 注销当前用户账号，连同资料一起删除。
	DeleteCurrentUser(ctx context.Context, userID string) error
}

type authService struct {
	db          *gorm.DB
	userRepo    mysql.UserRepository
	profileRepo mysql.ProfileRepository
	otpRepo     redis.OTPRepository
	emailClient dependencies.EmailClientInterface
	jwtCfg      config.JWTConfig
	logger      *core.ZapLogger
}

// NewAuthService 是 authService 的构造函数。
func NewAuthService(db *gorm.DB, userRepo mysql.UserRepository, profileRepo mysql.ProfileRepository, otpRepo redis.OTPRepository, emailClient dependencies.EmailClientInterface, jwtCfg config.JWTConfig, logger *core.ZapLogger) AuthService {
	return &authService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		otpRepo:     otpRepo,
		emailClient: emailClient,
		jwtCfg:      jwtCfg,
		logger:      logger,
	}
}

// GenerateToken 签发携带 {id, type} 声明的 HS256 JWT。
// - subjectType 为 "user" 或 "admin"，中间件按类型路由校验。
func GenerateToken(secret string, subjectID string, subjectType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   subjectID,
		"type": subjectType,
		"iat":  now.Unix(),
		"exp":  now.Add(constant.TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// generateOTPCode 生成 6 位数字验证码，使用 crypto/rand 保证不可预测。
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// generateResetToken 生成重置令牌明文与其 SHA-256 哈希。
// 数据库只保存哈希，令牌明文只出现在发给用户的邮件里。
func generateResetToken() (token string, tokenHash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	sum := sha256.Sum256([]byte(token))
	return token, hex.EncodeToString(sum[:]), nil
}

// Register 实现用户注册。
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*vo.UserVO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return nil, err
	}
	hashStr := string(hash)

	user := &entities.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hashStr,
		IsVerified:   false,
	}
	if err := s.userRepo.CreateUser(ctx, s.db, user); err != nil {
		return nil, err
	}

	// 验证码写入失败不回滚注册，用户可以通过重发接口重试。
	if err := s.sendVerificationCode(ctx, user.Email); err != nil {
		s.logger.Error("注册后发送验证码失败", zap.String("userID", user.ID), zap.Error(err))
	}

	return vo.MapUserToVO(user), nil
}

// sendVerificationCode 生成验证码、写入 Redis 并发送邮件。
func (s *authService) sendVerificationCode(ctx context.Context, email string) error {
	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("生成验证码失败: %w", err)
	}
	if err := s.otpRepo.StoreCode(ctx, email, code); err != nil {
		return fmt.Errorf("存储验证码失败: %w", err)
	}
	if err := s.emailClient.SendVerificationCode(ctx, email, code); err != nil {
		return fmt.Errorf("发送验证邮件失败: %w", err)
	}
	return nil
}

// Login 实现邮箱密码登录。
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*vo.AuthResultVO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, myErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// 第三方登录用户没有密码哈希，不能走密码登录。
	if user.PasswordHash == nil {
		return nil, myErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, myErrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, myErrors.ErrNotVerified
	}
	if user.IsBanned {
		return nil, myErrors.ErrUserBanned
	}

	token, err := GenerateToken(s.jwtCfg.Secret, user.ID, "user")
	if err != nil {
		s.logger.Error("签发用户令牌失败", zap.String("userID", user.ID), zap.Error(err))
		return nil, err
	}

	return &vo.AuthResultVO{Token: token, User: vo.MapUserToVO(user)}, nil
}

// VerifyEmail 实现邮箱验证。
func (s *authService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*vo.AuthResultVO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, myErrors.ErrInvalidOTP
		}
		return nil, err
	}

	if err := s.otpRepo.VerifyAndConsume(ctx, req.Email, req.Code); err != nil {
		return nil, err
	}

	if !user.IsVerified {
		if err := s.userRepo.SetVerified(ctx, user.ID); err != nil {
			return nil, err
		}
		user.IsVerified = true
	}

	token, err := GenerateToken(s.jwtCfg.Secret, user.ID, "user")
	if err != nil {
		s.logger.Error("签发用户令牌失败", zap.String("userID", user.ID), zap.Error(err))
		return nil, err
	}

	return &vo.AuthResultVO{Token: token, User: vo.MapUserToVO(user)}, nil
}

// ResendOTP 实现验证码重发。
func (s *authService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			// 不泄露邮箱是否注册，静默成功。
			return nil
		}
		return err
	}
	if user.IsVerified {
		return nil
	}
	return s.sendVerificationCode(ctx, email)
}

// ForgotPassword 实现找回密码的令牌下发。
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			// 邮箱未注册时静默成功，防止账号枚举。
			return nil
		}
		return err
	}

	token, tokenHash, err := generateResetToken()
	if err != nil {
		s.logger.Error("生成重置令牌失败", zap.Error(err))
		return err
	}

	expiresAt := time.Now().Add(constant.ResetTokenTTL)
	err = s.userRepo.UpdateUser(ctx, s.db, user.ID, map[string]interface{}{
		"reset_token_hash":       tokenHash,
		"reset_token_expires_at": expiresAt,
	})
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("https://blog.example.com/reset-password?token=%s", token)
	if err := s.emailClient.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		s.logger.Error("发送重置密码邮件失败", zap.String("userID", user.ID), zap.Error(err))
		return err
	}
	return nil
}

// ResetPassword 实现密码重置。
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	sum := sha256.Sum256([]byte(req.Token))
	tokenHash := hex.EncodeToString(sum[:])

	user, err := s.userRepo.GetUserByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return myErrors.ErrInvalidResetToken
		}
		return err
	}
	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return myErrors.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return err
	}

	// 更新密码的同时清空重置令牌，令牌一次性使用。
	return s.userRepo.UpdateUser(ctx, s.db, user.ID, map[string]interface{}{
		"password_hash":          string(hash),
		"reset_token_hash":       nil,
		"reset_token_expires_at": nil,
	})
}

// OAuthLogin 实现第三方登录。
func (s *authService) OAuthLogin(ctx context.Context, req *dto.OAuthLoginRequest) (*vo.AuthResultVO, error) {
	user, err := s.userRepo.GetUserByProvider(ctx, req.Provider, req.ProviderID)
	if err != nil {
		if !errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, err
		}
		// 首次第三方登录，创建已验证的用户记录。
		user = &entities.User{
			ID:         uuid.NewString(),
			Username:   req.Username,
			Email:      req.Email,
			Provider:   &req.Provider,
			ProviderID: &req.ProviderID,
			Avatar:     req.Avatar,
			IsVerified: true,
		}
		if createErr := s.userRepo.CreateUser(ctx, s.db, user); createErr != nil {
			return nil, createErr
		}
	}

	if user.IsBanned {
		return nil, myErrors.ErrUserBanned
	}

	token, err := GenerateToken(s.jwtCfg.Secret, user.ID, "user")
	if err != nil {
		s.logger.Error("签发用户令牌失败", zap.String("userID", user.ID), zap.Error(err))
		return nil, err
	}

	return &vo.AuthResultVO{Token: token, User: vo.MapUserToVO(user)}, nil
}

// GetCurrentUser 实现当前用户信息查询。
func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*vo.UserVO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return vo.MapUserToVO(user), nil
}

// UpdateCurrentUser 实现账号信息更新。
func (s *authService) UpdateCurrentUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*vo.UserVO, error) {
	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) > 0 {
		if err := s.userRepo.UpdateUser(ctx, s.db, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.GetCurrentUser(ctx, userID)
}

// DeleteCurrentUser 实现账号注销。
// 资料随账号删除，博客与评论保留，由内容侧的删除流程单独处理。
func (s *authService) DeleteCurrentUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.DeleteProfileByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("删除用户资料失败: %w", err)
		}
		if err := s.userRepo.DeleteUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("删除用户账号失败: %w", err)
		}
		return nil
	})
}
