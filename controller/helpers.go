package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/constants"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/response"
)

// respondServiceError 将服务层错误映射为统一的 HTTP 错误响应。
// - 错误分类见各业务错误定义；未识别的错误统一按 500 处理，不向客户端泄露细节。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, "资源未找到")
	case errors.Is(err, myErrors.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, "无权执行此操作")
	case errors.Is(err, myErrors.ErrCommentsDisabled):
		response.RespondError(c, http.StatusForbidden, "该博客已关闭评论")
	case errors.Is(err, myErrors.ErrUserBanned):
		response.RespondError(c, http.StatusForbidden, "账号已被封禁")
	case errors.Is(err, myErrors.ErrAlreadyReported):
		response.RespondError(c, http.StatusConflict, "你已举报过该博客")
	case errors.Is(err, myErrors.ErrAlreadyReviewed):
		response.RespondError(c, http.StatusConflict, "该举报已被复审")
	case errors.Is(err, myErrors.ErrAlreadyInTargetState):
		response.RespondError(c, http.StatusConflict, "目标已处于该状态")
	case errors.Is(err, myErrors.ErrEmailTaken):
		response.RespondError(c, http.StatusConflict, "该邮箱已被注册")
	case errors.Is(err, myErrors.ErrInvalidCredentials):
		response.RespondError(c, http.StatusUnauthorized, "邮箱或密码错误")
	case errors.Is(err, myErrors.ErrInvalidOTP):
		response.RespondError(c, http.StatusUnauthorized, "验证码无效或已过期")
	case errors.Is(err, myErrors.ErrInvalidResetToken):
		response.RespondError(c, http.StatusUnauthorized, "重置令牌无效或已过期")
	case errors.Is(err, myErrors.ErrNotVerified):
		response.RespondError(c, http.StatusUnauthorized, "邮箱尚未验证，请先完成验证")
	case errors.Is(err, myErrors.ErrSelfFollow):
		response.RespondError(c, http.StatusBadRequest, "不能关注自己")
	default:
		response.RespondError(c, http.StatusInternalServerError, "服务器内部错误")
	}
}

// currentUserID 从 Gin 上下文获取当前登录用户 ID，未登录时返回空串。
func currentUserID(c *gin.Context) string {
	return c.GetString(string(constants.UserIDKey))
}

// requireUserID 获取当前登录用户 ID，缺失时直接响应 401 并返回 false。
func requireUserID(c *gin.Context) (string, bool) {
	userID := currentUserID(c)
	if userID == "" {
		response.RespondError(c, http.StatusUnauthorized, "无法获取用户ID，用户可能未登录或凭证缺失")
		return "", false
	}
	return userID, true
}

// requireAdminID 获取当前管理员 ID，缺失时直接响应 401 并返回 false。
func requireAdminID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(middleware.AdminIDKey)
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, "无法获取管理员ID，可能未登录或凭证缺失")
		return 0, false
	}
	adminID, ok := value.(uint64)
	if !ok || adminID == 0 {
		response.RespondError(c, http.StatusUnauthorized, "管理员ID格式无效")
		return 0, false
	}
	return adminID, true
}

// parseUint64Param 解析 URL 路径中的数字 ID 参数，格式非法时响应 400 并返回 false。
func parseUint64Param(c *gin.Context, name string) (uint64, bool) {
	raw := c.Param(name)
	if raw == "" {
		response.RespondError(c, http.StatusBadRequest, "URL 路径中缺少 "+name+" 参数")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "URL 路径中的 "+name+" 格式无效")
		return 0, false
	}
	return id, true
}
