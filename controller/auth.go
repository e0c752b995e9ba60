package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// AuthController 定义认证控制器的结构体
type AuthController struct {
	authService service.AuthService
	limiter     redis.RateLimiter
}

// NewAuthController 构造函数，用于创建 AuthController 实例
func NewAuthController(authService service.AuthService, limiter redis.RateLimiter) *AuthController {
	return &AuthController{
		authService: authService,
		limiter:     limiter,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  使用用户名、邮箱和密码注册新账号，注册后向邮箱发送 6 位验证码。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} vo.UserVOWrapper "注册成功，等待邮箱验证"
// @Failure      400 {object} vo.ErrorResponseWrapper "请求参数无效"
// @Failure      409 {object} vo.BaseResponseWrapper "邮箱已被注册"
// @Failure      429 {object} vo.BaseResponseWrapper "请求过于频繁"
// @Router       /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusCreated, user, "注册成功，验证码已发送至邮箱")
}

// Login 用户登录
// @Summary      用户登录
// @Description  邮箱密码登录，返回 JWT 令牌。未验证邮箱或已封禁的账号无法登录。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} vo.AuthResultVOWrapper "登录成功"
// @Failure      401 {object} vo.BaseResponseWrapper "凭证无效或邮箱未验证"
// @Failure      403 {object} vo.BaseResponseWrapper "账号已被封禁"
// @Router       /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	result, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, result, "登录成功")
}

// VerifyEmail 校验邮箱验证码
// @Summary      验证邮箱
// @Description  校验 6 位验证码，成功后账号激活并返回 JWT 令牌。验证码一次性使用。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyEmailRequest true "邮箱与验证码"
// @Success      200 {object} vo.AuthResultVOWrapper "验证成功"
// @Failure      401 {object} vo.BaseResponseWrapper "验证码无效或已过期"
// @Router       /auth/verify-email [post]
func (ctrl *AuthController) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	result, err := ctrl.authService.VerifyEmail(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, result, "邮箱验证成功")
}

// ResendOTP 重发验证码
// @Summary      重发验证码
// @Description  为未验证的账号重新发送邮箱验证码。无论邮箱是否注册都返回成功。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.ResendOTPRequest true "邮箱"
// @Success      200 {object} vo.BaseResponseWrapper "已发送"
// @Failure      429 {object} vo.BaseResponseWrapper "请求过于频繁"
// @Router       /auth/resend-otp [post]
func (ctrl *AuthController) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	if err := ctrl.authService.ResendOTP(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "如果该邮箱已注册，验证码已发送")
}

// ForgotPassword 找回密码
// @Summary      找回密码
// @Description  向邮箱发送密码重置链接。无论邮箱是否注册都返回成功，防止账号枚举。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.ForgotPasswordRequest true "邮箱"
// @Success      200 {object} vo.BaseResponseWrapper "已发送"
// @Router       /auth/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	if err := ctrl.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "如果该邮箱已注册，重置链接已发送")
}

// ResetPassword 重置密码
// @Summary      重置密码
// @Description  使用邮件中的令牌设置新密码，令牌一次性使用。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.ResetPasswordRequest true "令牌与新密码"
// @Success      200 {object} vo.BaseResponseWrapper "重置成功"
// @Failure      401 {object} vo.BaseResponseWrapper "令牌无效或已过期"
// @Router       /auth/reset-password [put]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	if err := ctrl.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "密码重置成功")
}

// OAuthLogin 第三方登录
// @Summary      第三方登录
// @Description  使用网关校验过的第三方身份登录，首次登录自动创建账号。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.OAuthLoginRequest true "第三方身份信息"
// @Success      200 {object} vo.AuthResultVOWrapper "登录成功"
// @Failure      403 {object} vo.BaseResponseWrapper "账号已被封禁"
// @Router       /auth/oauth [post]
func (ctrl *AuthController) OAuthLogin(c *gin.Context) {
	var req dto.OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	result, err := ctrl.authService.OAuthLogin(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, result, "登录成功")
}

// GetMe 获取当前用户
// @Summary      获取当前用户信息
// @Tags         auth (认证)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} vo.UserVOWrapper "当前用户信息"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Router       /users/me [get]
func (ctrl *AuthController) GetMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := ctrl.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, user, "")
}

// UpdateMe 更新当前用户
// @Summary      更新当前用户信息
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateUserRequest true "要更新的字段"
// @Success      200 {object} vo.UserVOWrapper "更新后的用户信息"
// @Router       /users/me [put]
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	user, err := ctrl.authService.UpdateCurrentUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, user, "更新成功")
}

// DeleteMe 注销当前账号
// @Summary      注销当前账号
// @Tags         auth (认证)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} vo.BaseResponseWrapper "注销成功"
// @Router       /users/me [delete]
func (ctrl *AuthController) DeleteMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := ctrl.authService.DeleteCurrentUser(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "账号已注销")
}

// GetUser 查看用户公开信息
// @Summary      查看用户公开信息
// @Tags         users (用户)
// @Produce      json
// @Param        id path string true "用户ID"
// @Success      200 {object} vo.UserVOWrapper "用户信息"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /users/{id} [get]
func (ctrl *AuthController) GetUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "URL 路径中缺少用户 ID")
		return
	}
	user, err := ctrl.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, user, "")
}

// RegisterRoutes 注册认证与用户相关路由。
// 认证端点按来源 IP 限流，预算见 constant 包。
func (ctrl *AuthController) RegisterRoutes(rg *gin.RouterGroup, userAuth gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register",
			middleware.RateLimitMiddleware(ctrl.limiter, "register", constant.RateLimitRegister, constant.RateLimitWindow),
			ctrl.Register)
		auth.POST("/login",
			middleware.RateLimitMiddleware(ctrl.limiter, "login", constant.RateLimitLogin, constant.RateLimitWindow),
			ctrl.Login)
		auth.POST("/verify-email",
			middleware.RateLimitMiddleware(ctrl.limiter, "verify-email", constant.RateLimitVerifyEmail, constant.RateLimitWindow),
			ctrl.VerifyEmail)
		auth.POST("/resend-otp",
			middleware.RateLimitMiddleware(ctrl.limiter, "resend-otp", constant.RateLimitResendOTP, constant.RateLimitWindow),
			ctrl.ResendOTP)
		auth.POST("/forgot-password",
			middleware.RateLimitMiddleware(ctrl.limiter, "forgot-password", constant.RateLimitForgotPassword, constant.RateLimitWindow),
			ctrl.ForgotPassword)
		auth.PUT("/reset-password", ctrl.ResetPassword)
		auth.POST("/oauth", ctrl.OAuthLogin)
	}

	users := rg.Group("/users")
	{
		users.GET("/me", userAuth, ctrl.GetMe)
		users.PUT("/me", userAuth, ctrl.UpdateMe)
		users.DELETE("/me", userAuth, ctrl.DeleteMe)
		users.GET("/:id", ctrl.GetUser)
	}
}
