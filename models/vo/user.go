package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// UserVO 定义了用户公开信息的响应数据结构
type UserVO struct {
	ID         string    `json:"id"`          // 用户ID
	Username   string    `json:"username"`    // 用户名
	Email      string    `json:"email"`       // 邮箱
	Avatar     string    `json:"avatar"`      // 头像 URL
	IsVerified bool      `json:"is_verified"` // 是否已验证邮箱
	CreatedAt  time.Time `json:"created_at"`  // 注册时间
}

// AuthResultVO 定义了登录/注册成功后的响应数据结构
type AuthResultVO struct {
	Token string  `json:"token"` // JWT 令牌
	User  *UserVO `json:"user"`  // 用户信息
}

// AdminUserVO 定义了管理端视角的用户信息，含封禁状态。
type AdminUserVO struct {
	UserVO
	IsBanned  bool       `json:"is_banned"`            // 是否已封禁
	BannedAt  *time.Time `json:"banned_at,omitempty"`  // 封禁时间
	BanReason *string    `json:"ban_reason,omitempty"` // 封禁原因
}

// UserListVO 定义了管理端用户列表的分页响应结构
type UserListVO struct {
	Users []*AdminUserVO `json:"users"` // 当前页的用户列表
	Total int64          `json:"total"` // 符合条件的总记录数
}

// MapUserToVO 将用户实体转换为公开信息 VO。
func MapUserToVO(user *entities.User) *UserVO {
	if user == nil {
		return nil
	}
	return &UserVO{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Avatar:     user.Avatar,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}

// MapUserToAdminVO 将用户实体转换为管理端视角的 VO。
func MapUserToAdminVO(user *entities.User) *AdminUserVO {
	if user == nil {
		return nil
	}
	return &AdminUserVO{
		UserVO:    *MapUserToVO(user),
		IsBanned:  user.IsBanned,
		BannedAt:  user.BannedAt,
		BanReason: user.BanReason,
	}
}

// MapUsersToAdminVOs 将用户实体列表转换为管理端 VO 列表。
func MapUsersToAdminVOs(users []*entities.User) []*AdminUserVO {
	if len(users) == 0 {
		return []*AdminUserVO{}
	}
	vos := make([]*AdminUserVO, 0, len(users))
	for _, u := range users {
		vos = append(vos, MapUserToAdminVO(u))
	}
	return vos
}
