package vo

import (
	"github.com/Xushengqwer/blog_service/models/entities"
)

// ProfileVO 定义了用户资料页的响应数据结构
type ProfileVO struct {
	UserID        string `json:"user_id"`        // 用户ID
	Username      string `json:"username"`       // 用户名
	Avatar        string `json:"avatar"`         // 头像 URL
	DisplayName   string `json:"display_name"`   // 展示名
	Bio           string `json:"bio"`            // 简介
	Website       string `json:"website"`        // 个人网站
	Location      string `json:"location"`       // 所在地
	FollowerCount int64  `json:"follower_count"` // 粉丝数
	FollowingCount int64 `json:"following_count"` // 关注数
	BlogCount     int64  `json:"blog_count"`     // 博客数
	IsFollowing   bool   `json:"is_following"`   // 当前登录用户是否已关注
}

// FollowStatsVO 定义了关注关系计数的响应数据结构
type FollowStatsVO struct {
	FollowerCount  int64 `json:"follower_count"`  // 粉丝数
	FollowingCount int64 `json:"following_count"` // 关注数
}

// MapProfileToVO 将资料实体与用户信息合并为资料页 VO。
// - profile 可能为 nil（用户从未编辑过资料），此时资料字段为空值。
func MapProfileToVO(user *entities.User, profile *entities.Profile) *ProfileVO {
	if user == nil {
		return nil
	}
	v := &ProfileVO{
		UserID:   user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
	if profile != nil {
		v.DisplayName = profile.DisplayName
		v.Bio = profile.Bio
		v.Website = profile.Website
		v.Location = profile.Location
	}
	return v
}
