package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// fakeOTPRepo 以内存 map 模拟验证码的存取，语义与 Redis 实现一致 (单次有效)。
type fakeOTPRepo struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: make(map[string]string)}
}

func (r *fakeOTPRepo) StoreCode(_ context.Context, email string, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[email] = code
	return nil
}

func (r *fakeOTPRepo) VerifyAndConsume(_ context.Context, email string, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.codes[email]
	if !ok || stored != code {
		return myErrors.ErrInvalidOTP
	}
	delete(r.codes, email)
	return nil
}

func (r *fakeOTPRepo) lastCode(email string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[email]
}

// fakeEmailClient 记录发出的邮件，不做真实发送。
type fakeEmailClient struct {
	mu        sync.Mutex
	codes     map[string]string
	resetURLs map[string]string
}

func newFakeEmailClient() *fakeEmailClient {
	return &fakeEmailClient{
		codes:     make(map[string]string),
		resetURLs: make(map[string]string),
	}
}

func (c *fakeEmailClient) SendVerificationCode(_ context.Context, to string, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[to] = code
	return nil
}

func (c *fakeEmailClient) SendPasswordReset(_ context.Context, to string, resetURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetURLs[to] = resetURL
	return nil
}

func (c *fakeEmailClient) lastResetURL(to string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetURLs[to]
}

func newAuthService(t *testing.T, db *gorm.DB, otpRepo *fakeOTPRepo, emailClient *fakeEmailClient) AuthService {
	t.Helper()
	logger := newTestLogger(t)
	return NewAuthService(
		db,
		mysql.NewUserRepository(db, logger),
		mysql.NewProfileRepository(db, logger),
		otpRepo,
		emailClient,
		config.JWTConfig{Secret: "test-secret"},
		logger,
	)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, newFakeOTPRepo(), newFakeEmailClient())
	ctx := context.Background()

	req := &dto.RegisterRequest{Username: "老王", Email: "wang@example.com", Password: "password123"}
	user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.IsVerified)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "别人", Email: "wang@example.com", Password: "password456"})
	assert.ErrorIs(t, err, myErrors.ErrEmailTaken)
}

func TestRegisterVerifyLogin_FullFlow(t *testing.T) {
	db := setupTestDB(t)
	otpRepo := newFakeOTPRepo()
	svc := newAuthService(t, db, otpRepo, newFakeEmailClient())
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "老王", Email: "wang@example.com", Password: "password123"})
	require.NoError(t, err)

	// 未验证邮箱不能登录
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "wang@example.com", Password: "password123"})
	assert.ErrorIs(t, err, myErrors.ErrNotVerified)

	// 错误验证码被拒绝
	_, err = svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "wang@example.com", Code: "000000"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidOTP)

	code := otpRepo.lastCode("wang@example.com")
	require.NotEmpty(t, code)
	result, err := svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "wang@example.com", Code: code})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.User.IsVerified)

	// 验证码单次有效
	_, err = svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "wang@example.com", Code: code})
	assert.ErrorIs(t, err, myErrors.ErrInvalidOTP)

	// 验证后可以正常登录
	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "wang@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	// 密码错误与用户不存在统一表现
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "wang@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidCredentials)
}

func TestLogin_BannedUserRejected(t *testing.T) {
	db := setupTestDB(t)
	otpRepo := newFakeOTPRepo()
	svc := newAuthService(t, db, otpRepo, newFakeEmailClient())
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{Username: "老王", Email: "wang@example.com", Password: "password123"})
	require.NoError(t, err)
	code := otpRepo.lastCode("wang@example.com")
	_, err = svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "wang@example.com", Code: code})
	require.NoError(t, err)

	now := time.Now()
	logger := newTestLogger(t)
	require.NoError(t, mysql.NewUserRepository(db, logger).SetBanned(ctx, db, user.ID, true, &now, nil))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "wang@example.com", Password: "password123"})
	assert.ErrorIs(t, err, myErrors.ErrUserBanned)
}

func TestForgotAndResetPassword(t *testing.T) {
	db := setupTestDB(t)
	otpRepo := newFakeOTPRepo()
	emailClient := newFakeEmailClient()
	svc := newAuthService(t, db, otpRepo, emailClient)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "老王", Email: "wang@example.com", Password: "password123"})
	require.NoError(t, err)
	code := otpRepo.lastCode("wang@example.com")
	_, err = svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "wang@example.com", Code: code})
	require.NoError(t, err)

	// 未注册邮箱静默成功，防止账号枚举
	require.NoError(t, svc.ForgotPassword(ctx, "ghost@example.com"))
	assert.Empty(t, emailClient.lastResetURL("ghost@example.com"))

	require.NoError(t, svc.ForgotPassword(ctx, "wang@example.com"))
	resetURL := emailClient.lastResetURL("wang@example.com")
	require.NotEmpty(t, resetURL)

	// 邮件中的 URL 携带令牌明文
	_, token, found := strings.Cut(resetURL, "token=")
	require.True(t, found)
	require.Len(t, token, 64)

	err = svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: "bogus", NewPassword: "newpassword1"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidResetToken)

	require.NoError(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "newpassword1"}))

	// 令牌一次性使用
	err = svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "другой"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidResetToken)

	// 旧密码失效，新密码生效
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "wang@example.com", Password: "password123"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidCredentials)
	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "wang@example.com", Password: "newpassword1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestOAuthLogin_FindOrCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, newFakeOTPRepo(), newFakeEmailClient())
	ctx := context.Background()

	req := &dto.OAuthLoginRequest{
		Provider:   "google",
		ProviderID: "google-uid-1",
		Email:      "wang@example.com",
		Username:   "老王",
	}

	first, err := svc.OAuthLogin(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, first.Token)
	assert.True(t, first.User.IsVerified)

	// 同一 (provider, providerID) 再次登录复用已有账号
	second, err := svc.OAuthLogin(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	// 第三方账号没有本地密码，不能走密码登录
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "wang@example.com", Password: "anything"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidCredentials)
}

func TestUpdateAndDeleteCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, newFakeOTPRepo(), newFakeEmailClient())
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Username: "老王", Email: "wang@example.com", Password: "password123"})
	require.NoError(t, err)

	newName := "老王二号"
	updated, err := svc.UpdateCurrentUser(ctx, registered.ID, &dto.UpdateUserRequest{Username: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Username)

	require.NoError(t, svc.DeleteCurrentUser(ctx, registered.ID))
	_, err = svc.GetCurrentUser(ctx, registered.ID)
	assert.Error(t, err)
}
