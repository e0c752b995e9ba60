package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/core"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/response"
)

// 管理员身份在 Gin 上下文中的键。
// 用户 ID 复用 constants.UserIDKey，与网关侧注入的键保持一致。
const (
	AdminIDKey          = "adminID"
	AdminPermissionsKey = "adminPermissions"
)

// parseToken 解析并校验 HS256 JWT，返回 {id, type} 声明。
func parseToken(tokenStr string, secret string) (id string, subjectType string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	id, _ = claims["id"].(string)
	subjectType, _ = claims["type"].(string)
	if id == "" || subjectType == "" {
		return "", "", errors.New("missing claims")
	}
	return id, subjectType, nil
}

// extractBearerToken 从 Authorization 头提取 Bearer 令牌。
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserAuthMiddleware 校验用户令牌并将用户 ID 注入 Gin 上下文。
// - 只接受 type 为 "user" 的令牌，管理员令牌不能访问用户端接口。
func UserAuthMiddleware(jwtCfg config.JWTConfig, userRepo mysql.UserRepository, logger *core.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearerToken(c)
		if tokenStr == "" {
			response.RespondError(c, http.StatusUnauthorized, "未提供认证令牌")
			return
		}

		id, subjectType, err := parseToken(tokenStr, jwtCfg.Secret)
		if err != nil || subjectType != "user" {
			response.RespondError(c, http.StatusUnauthorized, "认证令牌无效或已过期")
			return
		}

		// 每次请求校验封禁状态，封禁立即生效而不是等令牌过期。
		user, err := userRepo.GetUserByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				response.RespondError(c, http.StatusUnauthorized, "认证令牌无效或已过期")
			} else {
				logger.Error("认证时查询用户失败", zap.String("userID", id), zap.Error(err))
				response.RespondError(c, http.StatusInternalServerError, "服务器内部错误")
			}
			return
		}
		if user.IsBanned {
			response.RespondError(c, http.StatusForbidden, "账号已被封禁")
			return
		}

		c.Set(string(constants.UserIDKey), id)
		c.Next()
	}
}

// OptionalUserAuthMiddleware 尝试解析用户令牌但不强制。
// 公开读接口用它区分登录与匿名访客（浏览计数只统计登录用户）。
func OptionalUserAuthMiddleware(jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := extractBearerToken(c); tokenStr != "" {
			if id, subjectType, err := parseToken(tokenStr, jwtCfg.Secret); err == nil && subjectType == "user" {
				c.Set(string(constants.UserIDKey), id)
			}
		}
		c.Next()
	}
}

// AdminAuthMiddleware 校验管理员令牌，将管理员 ID 与权限列表注入 Gin 上下文。
func AdminAuthMiddleware(jwtCfg config.JWTConfig, adminRepo mysql.AdminRepository, logger *core.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearerToken(c)
		if tokenStr == "" {
			response.RespondError(c, http.StatusUnauthorized, "未提供认证令牌")
			return
		}

		id, subjectType, err := parseToken(tokenStr, jwtCfg.Secret)
		if err != nil || subjectType != "admin" {
			response.RespondError(c, http.StatusUnauthorized, "认证令牌无效或已过期")
			return
		}

		adminID, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, "认证令牌无效或已过期")
			return
		}

		// 权限列表从数据库加载而不是放进令牌，权限变更即时生效。
		admin, err := adminRepo.GetAdminByID(c.Request.Context(), adminID)
		if err != nil {
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				response.RespondError(c, http.StatusUnauthorized, "认证令牌无效或已过期")
			} else {
				logger.Error("认证时查询管理员失败", zap.Uint64("adminID", adminID), zap.Error(err))
				response.RespondError(c, http.StatusInternalServerError, "服务器内部错误")
			}
			return
		}

		c.Set(AdminIDKey, admin.ID)
		c.Set(AdminPermissionsKey, admin.Permissions)
		c.Next()
	}
}

// RequirePermission 校验当前管理员是否持有指定权限。
// - 权限是闭集枚举的逐项匹配，没有通配符和隐含包含关系，缺失即 403。
func RequirePermission(perm enums.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(AdminPermissionsKey)
		if !exists {
			response.RespondError(c, http.StatusForbidden, "缺少操作权限")
			return
		}
		perms, ok := value.(enums.Permissions)
		if !ok || !perms.Contains(perm) {
			response.RespondError(c, http.StatusForbidden, "缺少操作权限")
			return
		}
		c.Next()
	}
}
