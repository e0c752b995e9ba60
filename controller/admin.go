package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// AdminController 定义管理端控制器的结构体
type AdminController struct {
	adminService service.AdminService
	limiter      redis.RateLimiter
}

// NewAdminController 构造函数，用于创建 AdminController 实例
func NewAdminController(adminService service.AdminService, limiter redis.RateLimiter) *AdminController {
	return &AdminController{
		adminService: adminService,
		limiter:      limiter,
	}
}

// Login 管理员登录
// @Summary      管理员登录
// @Description  使用管理员账号密码登录，返回管理员令牌。
// @Tags         admin (管理端)
// @Accept       json
// @Produce      json
// @Param        request body dto.AdminLoginRequest true "管理员凭证"
// @Success      200 {object} vo.AdminAuthResultVOWrapper "登录成功"
// @Failure      401 {object} vo.BaseResponseWrapper "用户名或密码错误"
// @Router       /auth/admin-login [post]
func (ctrl *AdminController) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	result, err := ctrl.adminService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, result, "登录成功")
}

// ListUsers 用户列表
// @Summary      用户列表
// @Description  分页查询平台用户，支持用户名/邮箱关键词搜索。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码 (从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Param        search query string false "用户名或邮箱关键词"
// @Success      200 {object} vo.UserListVOWrapper "用户列表"
// @Router       /admin/users [get]
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, "查询参数无效", err.Error())
		return
	}

	list, err := ctrl.adminService.ListUsers(c.Request.Context(), &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// GetUser 用户详情
// @Summary      用户详情
// @Description  查询单个用户的完整信息，包含封禁状态与封禁原因。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} vo.AdminUserVOWrapper "用户详情"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /admin/users/{id} [get]
func (ctrl *AdminController) GetUser(c *gin.Context) {
	userID := c.Param("id")
	user, err := ctrl.adminService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, user, "")
}

// BanUser 封禁用户
// @Summary      封禁用户
// @Description  封禁指定用户并记录原因。用户已处于封禁状态时返回 409。
// @Tags         admin (管理端)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Param        request body dto.BanUserRequest true "封禁原因"
// @Success      200 {object} vo.BaseResponseWrapper "封禁成功"
// @Failure      409 {object} vo.BaseResponseWrapper "用户已处于封禁状态"
// @Router       /admin/users/{id}/ban [patch]
func (ctrl *AdminController) BanUser(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	var req dto.BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	if err := ctrl.adminService.BanUser(c.Request.Context(), c.Param("id"), adminID, req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "用户已封禁")
}

// UnbanUser 解封用户
// @Summary      解封用户
// @Description  解除指定用户的封禁。用户未处于封禁状态时返回 409。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} vo.BaseResponseWrapper "解封成功"
// @Failure      409 {object} vo.BaseResponseWrapper "用户未处于封禁状态"
// @Router       /admin/users/{id}/unban [patch]
func (ctrl *AdminController) UnbanUser(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	if err := ctrl.adminService.UnbanUser(c.Request.Context(), c.Param("id"), adminID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "用户已解封")
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Description  删除指定用户账号及其主页。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /admin/users/{id} [delete]
func (ctrl *AdminController) DeleteUser(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	if err := ctrl.adminService.DeleteUser(c.Request.Context(), c.Param("id"), adminID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "用户已删除")
}

// ListBlogs 博客列表（管理端）
// @Summary      博客列表（管理端）
// @Description  分页查询所有博客，不过滤可见性，支持按可见性状态筛选。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码 (从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Param        visibility query int false "可见性筛选 (0=公开 1=已下架)" Enums(0,1)
// @Success      200 {object} vo.BlogListVOWrapper "博客列表"
// @Router       /admin/blogs [get]
func (ctrl *AdminController) ListBlogs(c *gin.Context) {
	var query dto.ListBlogsAdminQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, "查询参数无效", err.Error())
		return
	}

	list, err := ctrl.adminService.ListBlogs(c.Request.Context(), &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// RemoveBlog 下架博客
// @Summary      下架博客
// @Description  将博客置为下架状态并记录操作原因。博客已处于下架状态时返回 409。
// @Tags         admin (管理端)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Param        request body dto.RemoveBlogRequest true "下架原因"
// @Success      200 {object} vo.BaseResponseWrapper "下架成功"
// @Failure      409 {object} vo.BaseResponseWrapper "博客已处于下架状态"
// @Router       /admin/blogs/{id}/remove [patch]
func (ctrl *AdminController) RemoveBlog(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}
	var req dto.RemoveBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	if err := ctrl.adminService.RemoveBlog(c.Request.Context(), blogID, adminID, req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "博客已下架")
}

// RestoreBlog 恢复博客
// @Summary      恢复博客
// @Description  将已下架的博客恢复为公开状态。博客已处于公开状态时返回 409。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Success      200 {object} vo.BaseResponseWrapper "恢复成功"
// @Failure      409 {object} vo.BaseResponseWrapper "博客已处于公开状态"
// @Router       /admin/blogs/{id}/restore [patch]
func (ctrl *AdminController) RestoreBlog(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	if err := ctrl.adminService.RestoreBlog(c.Request.Context(), blogID, adminID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "博客已恢复")
}

// DeleteBlog 删除博客（管理端）
// @Summary      删除博客（管理端）
// @Description  永久删除博客及其评论、举报与互动记录。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Router       /admin/blogs/{id} [delete]
func (ctrl *AdminController) DeleteBlog(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	if err := ctrl.adminService.DeleteBlog(c.Request.Context(), blogID, adminID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "博客已删除")
}

// ListComments 评论列表（管理端）
// @Summary      评论列表（管理端）
// @Description  分页查询全平台评论。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码 (从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Success      200 {object} vo.CommentListVOWrapper "评论列表"
// @Router       /admin/comments [get]
func (ctrl *AdminController) ListComments(c *gin.Context) {
	var page dto.PaginationQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.RespondError(c, http.StatusBadRequest, "查询参数无效", err.Error())
		return
	}

	comments, total, err := ctrl.adminService.ListComments(c.Request.Context(), &page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, &vo.CommentListVO{Comments: comments, Total: total}, "")
}

// DeleteComment 删除评论（管理端）
// @Summary      删除评论（管理端）
// @Description  删除任意评论及其整棵回复子树，并记录操作日志。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Router       /admin/comments/{id} [delete]
func (ctrl *AdminController) DeleteComment(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	commentID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	if err := ctrl.adminService.DeleteComment(c.Request.Context(), commentID, adminID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "评论已删除")
}

// ListReports 举报列表
// @Summary      举报列表
// @Description  分页查询举报记录，支持按处理状态筛选。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码 (从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Param        status query int false "处理状态 (0=待处理 1=已复审)" Enums(0,1)
// @Success      200 {object} vo.ReportListVOWrapper "举报列表"
// @Router       /admin/reports [get]
func (ctrl *AdminController) ListReports(c *gin.Context) {
	var query dto.ListReportsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, "查询参数无效", err.Error())
		return
	}

	list, err := ctrl.adminService.ListReports(c.Request.Context(), &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// ReviewReport 复审举报
// @Summary      复审举报
// @Description  将举报标记为已复审。举报已被其他管理员复审时返回 409。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "举报ID"
// @Success      200 {object} vo.ReportVOWrapper "复审成功"
// @Failure      409 {object} vo.BaseResponseWrapper "该举报已被复审"
// @Router       /admin/reports/{id}/review [patch]
func (ctrl *AdminController) ReviewReport(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	reportID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	report, err := ctrl.adminService.ReviewReport(c.Request.Context(), reportID, adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, report, "举报已复审")
}

// ListActionLogs 操作日志列表
// @Summary      操作日志
// @Description  按时间倒序分页查询管理操作日志。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码 (从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Success      200 {object} vo.ActionLogListVOWrapper "操作日志列表"
// @Router       /admin/logs [get]
func (ctrl *AdminController) ListActionLogs(c *gin.Context) {
	var page dto.PaginationQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.RespondError(c, http.StatusBadRequest, "查询参数无效", err.Error())
		return
	}

	list, err := ctrl.adminService.ListActionLogs(c.Request.Context(), &page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// GetStats 平台统计
// @Summary      平台统计
// @Description  查询博客总数、公开数、下架数与待处理举报数。
// @Tags         admin (管理端)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} vo.AdminStatsVOWrapper "平台统计"
// @Router       /admin/stats [get]
func (ctrl *AdminController) GetStats(c *gin.Context) {
	stats, err := ctrl.adminService.GetStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, stats, "")
}

// RegisterRoutes 注册管理端路由。
// - 登录端点走限流；其余端点经管理员认证中间件后再按能力令牌逐一放行。
func (ctrl *AdminController) RegisterRoutes(rg *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	rg.POST("/auth/admin-login",
		middleware.RateLimitMiddleware(ctrl.limiter, "admin-login", constant.RateLimitAdminLogin, constant.RateLimitWindow),
		ctrl.Login)

	admin := rg.Group("/admin", adminAuth)
	{
		users := admin.Group("/users", middleware.RequirePermission(enums.PermManageUsers))
		{
			users.GET("", ctrl.ListUsers)
			users.GET("/:id", ctrl.GetUser)
			users.PATCH("/:id/ban", ctrl.BanUser)
			users.PATCH("/:id/unban", ctrl.UnbanUser)
			users.DELETE("/:id", ctrl.DeleteUser)
		}

		blogs := admin.Group("/blogs", middleware.RequirePermission(enums.PermManageBlogs))
		{
			blogs.GET("", ctrl.ListBlogs)
			blogs.PATCH("/:id/remove", ctrl.RemoveBlog)
			blogs.PATCH("/:id/restore", ctrl.RestoreBlog)
			blogs.DELETE("/:id", ctrl.DeleteBlog)
		}

		comments := admin.Group("/comments", middleware.RequirePermission(enums.PermManageComments))
		{
			comments.GET("", ctrl.ListComments)
			comments.DELETE("/:id", ctrl.DeleteComment)
		}

		reports := admin.Group("/reports", middleware.RequirePermission(enums.PermManageReports))
		{
			reports.GET("", ctrl.ListReports)
			reports.PATCH("/:id/review", ctrl.ReviewReport)
		}

		admin.GET("/logs", middleware.RequirePermission(enums.PermViewLogs), ctrl.ListActionLogs)
		admin.GET("/stats", ctrl.GetStats)
	}
}
