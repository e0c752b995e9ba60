package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// ProfileController 定义个人主页控制器的结构体
type ProfileController struct {
	profileService service.ProfileService
	blogService    service.BlogService
}

// NewProfileController 构造函数，用于创建 ProfileController 实例
func NewProfileController(profileService service.ProfileService, blogService service.BlogService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		blogService:    blogService,
	}
}

// GetMyProfile 查询当前用户的个人主页
// @Summary      我的主页
// @Description  查询当前登录用户的个人主页，包含关注数、粉丝数与博客数。
// @Tags         profiles (主页)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} vo.ProfileVOWrapper "个人主页"
// @Router       /profile/me [get]
func (ctrl *ProfileController) GetMyProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	profile, err := ctrl.profileService.GetProfile(c.Request.Context(), userID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, profile, "")
}

// UpdateMyProfile 更新当前用户的个人主页
// @Summary      更新我的主页
// @Description  更新展示名、简介、网站与所在地，不存在时自动创建主页记录。
// @Tags         profiles (主页)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "主页字段"
// @Success      200 {object} vo.ProfileVOWrapper "更新后的主页"
// @Router       /profile/me [put]
func (ctrl *ProfileController) UpdateMyProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	profile, err := ctrl.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, profile, "主页更新成功")
}

// GetProfile 查询指定用户的个人主页
// @Summary      用户主页
// @Description  查询指定用户的公开主页。登录访问时额外返回是否已关注该用户。
// @Tags         profiles (主页)
// @Produce      json
// @Param        userId path string true "用户ID"
// @Success      200 {object} vo.ProfileVOWrapper "个人主页"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /profile/{userId} [get]
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "URL 路径中缺少 userId 参数")
		return
	}

	profile, err := ctrl.profileService.GetProfile(c.Request.Context(), userID, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, profile, "")
}

// ToggleFollow 切换关注
// @Summary      切换关注
// @Description  未关注则关注，已关注则取消关注。不允许关注自己。
// @Tags         profiles (主页)
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "目标用户ID"
// @Success      200 {object} vo.BaseResponseWrapper "切换成功"
// @Failure      400 {object} vo.BaseResponseWrapper "不能关注自己"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /profile/{userId}/follow [put]
func (ctrl *ProfileController) ToggleFollow(c *gin.Context) {
	followerID, ok := requireUserID(c)
	if !ok {
		return
	}
	followeeID := c.Param("userId")

	following, err := ctrl.profileService.ToggleFollow(c.Request.Context(), followerID, followeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if following {
		response.RespondMessage(c, http.StatusOK, "关注成功")
		return
	}
	response.RespondMessage(c, http.StatusOK, "已取消关注")
}

// GetFollowStats 查询关注统计
// @Summary      关注统计
// @Description  查询指定用户的关注数与粉丝数。
// @Tags         profiles (主页)
// @Produce      json
// @Param        userId path string true "用户ID"
// @Success      200 {object} vo.FollowStatsVOWrapper "关注统计"
// @Router       /profile/{userId}/follow-stats [get]
func (ctrl *ProfileController) GetFollowStats(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "URL 路径中缺少 userId 参数")
		return
	}

	stats, err := ctrl.profileService.GetFollowStats(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, stats, "")
}

// GetUserBlogs 查询指定用户的公开博客
// @Summary      用户博客列表
// @Description  分页查询指定用户的公开博客。
// @Tags         profiles (主页)
// @Produce      json
// @Param        id path string true "用户ID"
// @Param        page query int false "页码 (从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Success      200 {object} vo.BlogListVOWrapper "博客列表"
// @Router       /users/{id}/blogs [get]
func (ctrl *ProfileController) GetUserBlogs(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "URL 路径中缺少 id 参数")
		return
	}
	var page dto.PaginationQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.RespondError(c, http.StatusBadRequest, "查询参数无效", err.Error())
		return
	}

	query := dto.ListBlogsQuery{
		Page:     page.Page,
		PageSize: page.PageSize,
		AuthorID: userID,
	}
	list, err := ctrl.blogService.ListBlogs(c.Request.Context(), &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// RegisterRoutes 注册个人主页相关路由。
func (ctrl *ProfileController) RegisterRoutes(rg *gin.RouterGroup, userAuth, optionalAuth gin.HandlerFunc) {
	profile := rg.Group("/profile")
	{
		profile.GET("/me", userAuth, ctrl.GetMyProfile)
		profile.PUT("/me", userAuth, ctrl.UpdateMyProfile)
		profile.GET("/:userId", optionalAuth, ctrl.GetProfile)
		profile.PUT("/:userId/follow", userAuth, ctrl.ToggleFollow)
		profile.GET("/:userId/follow-stats", ctrl.GetFollowStats)
	}
	rg.GET("/users/:id/blogs", ctrl.GetUserBlogs)
}
