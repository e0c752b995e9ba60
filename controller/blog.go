package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// BlogController 定义博客控制器的结构体
type BlogController struct {
	blogService   service.BlogService
	engageService service.EngagementService
	reportService service.ReportService
}

// NewBlogController 构造函数，用于创建 BlogController 实例
func NewBlogController(blogService service.BlogService, engageService service.EngagementService, reportService service.ReportService) *BlogController {
	return &BlogController{
		blogService:   blogService,
		engageService: engageService,
		reportService: reportService,
	}
}

// ListBlogs 分页查询公开博客列表
// @Summary      博客列表
// @Description  分页查询公开博客，支持分类/关键词/作者筛选与排序。结果走查询指纹缓存，响应中的 source 字段标识数据来源。
// @Tags         blogs (博客)
// @Produce      json
// @Param        page query int false "页码 (从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10) maximum(100)
// @Param        category query string false "分类筛选"
// @Param        tag query string false "标签筛选"
// @Param        search query string false "标题关键词"
// @Param        author_id query string false "作者ID筛选"
// @Param        sort_by query string false "排序方式" Enums(newest,oldest,views)
// @Success      200 {object} vo.BlogListVOWrapper "博客列表"
// @Router       /blogs [get]
func (ctrl *BlogController) ListBlogs(c *gin.Context) {
	var query dto.ListBlogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, "查询参数无效", err.Error())
		return
	}

	list, err := ctrl.blogService.ListBlogs(c.Request.Context(), &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// GetPopularBlogs 热门博客榜单
// @Summary      热门博客
// @Description  按浏览量排序的热门博客榜单，由后台任务定期预热缓存。
// @Tags         blogs (博客)
// @Produce      json
// @Success      200 {object} vo.BlogListVOWrapper "热门博客列表"
// @Router       /blogs/popular [get]
func (ctrl *BlogController) GetPopularBlogs(c *gin.Context) {
	list, err := ctrl.blogService.GetPopularBlogs(c.Request.Context(), 10)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// GetMyBlogs 当前用户的博客列表
// @Summary      我的博客列表
// @Description  查询当前登录用户的博客，包含已被下架的。
// @Tags         blogs (博客)
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码 (从1开始)" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Success      200 {object} vo.BlogListVOWrapper "博客列表"
// @Router       /blogs/me/blogs [get]
func (ctrl *BlogController) GetMyBlogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var page dto.PaginationQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.RespondError(c, http.StatusBadRequest, "查询参数无效", err.Error())
		return
	}

	list, err := ctrl.blogService.ListBlogsByAuthor(c.Request.Context(), userID, &page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// GetMyBookmarks 当前用户的收藏列表
// @Summary      我的收藏
// @Tags         blogs (博客)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} vo.BlogListVOWrapper "收藏的博客列表"
// @Router       /blogs/me/bookmarks [get]
func (ctrl *BlogController) GetMyBookmarks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	list, err := ctrl.engageService.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// GetBlog 博客详情
// @Summary      博客详情
// @Description  查询单篇博客详情，走详情缓存。已下架的博客仅作者本人可见。每次访问都会累加浏览量。
// @Tags         blogs (博客)
// @Produce      json
// @Param        id path int true "博客ID"
// @Success      200 {object} vo.BlogDetailVOWrapper "博客详情"
// @Failure      404 {object} vo.BaseResponseWrapper "博客不存在或已下架"
// @Router       /blogs/{id} [get]
func (ctrl *BlogController) GetBlog(c *gin.Context) {
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	detail, err := ctrl.blogService.GetBlogByID(c.Request.Context(), blogID, currentUserID(c), false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, detail, "")
}

// CreateBlog 发布博客
// @Summary      发布博客
// @Tags         blogs (博客)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBlogRequest true "博客内容"
// @Success      201 {object} vo.BlogVOWrapper "创建成功"
// @Failure      400 {object} vo.ErrorResponseWrapper "请求参数无效"
// @Router       /blogs [post]
func (ctrl *BlogController) CreateBlog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	blog, err := ctrl.blogService.CreateBlog(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusCreated, blog, "发布成功")
}

// UpdateBlog 更新博客
// @Summary      更新博客
// @Description  更新博客内容字段与评论开关，仅作者本人可操作。更新后相关缓存立即失效。
// @Tags         blogs (博客)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Param        request body dto.UpdateBlogRequest true "要更新的字段"
// @Success      200 {object} vo.BlogVOWrapper "更新成功"
// @Failure      403 {object} vo.BaseResponseWrapper "非博客作者"
// @Failure      404 {object} vo.BaseResponseWrapper "博客不存在"
// @Router       /blogs/{id} [put]
func (ctrl *BlogController) UpdateBlog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	blog, err := ctrl.blogService.UpdateBlog(c.Request.Context(), blogID, userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, blog, "更新成功")
}

// DeleteBlog 删除博客
// @Summary      删除博客
// @Description  永久删除博客及其评论、举报与互动记录，仅作者本人可操作。
// @Tags         blogs (博客)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "非博客作者"
// @Router       /blogs/{id} [delete]
func (ctrl *BlogController) DeleteBlog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	if err := ctrl.blogService.DeleteBlog(c.Request.Context(), blogID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "博客删除成功")
}

// UploadCover 上传博客封面
// @Summary      上传博客封面
// @Description  上传封面图到对象存储，返回访问 URL，可在创建/更新博客时使用。
// @Tags         blogs (博客)
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        cover formData file true "封面图文件"
// @Success      200 {object} vo.UploadURLWrapper "封面 URL"
// @Router       /blogs/cover [post]
func (ctrl *BlogController) UploadCover(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "缺少封面图文件", err.Error())
		return
	}

	url, err := ctrl.blogService.UploadBlogCover(c.Request.Context(), userID, fileHeader)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, url, "上传成功")
}

// ToggleLike 切换博客点赞
// @Summary      切换博客点赞
// @Description  未点赞则建立点赞并清除同一用户的点踩，已点赞则取消。
// @Tags         blogs (博客)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Success      200 {object} vo.BaseResponseWrapper "切换成功"
// @Router       /blogs/{id}/like [put]
func (ctrl *BlogController) ToggleLike(c *gin.Context) {
	ctrl.toggle(c, ctrl.engageService.ToggleBlogLike, "点赞成功", "已取消点赞")
}

// ToggleDislike 切换博客点踩
// @Summary      切换博客点踩
// @Description  未点踩则建立点踩并清除同一用户的点赞，已点踩则取消。
// @Tags         blogs (博客)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Success      200 {object} vo.BaseResponseWrapper "切换成功"
// @Router       /blogs/{id}/dislike [put]
func (ctrl *BlogController) ToggleDislike(c *gin.Context) {
	ctrl.toggle(c, ctrl.engageService.ToggleBlogDislike, "点踩成功", "已取消点踩")
}

// ToggleBookmark 切换收藏
// @Summary      切换收藏
// @Description  未收藏则收藏，已收藏则取消。
// @Tags         blogs (博客)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Success      200 {object} vo.BaseResponseWrapper "切换成功"
// @Router       /blogs/{id}/bookmark [put]
func (ctrl *BlogController) ToggleBookmark(c *gin.Context) {
	ctrl.toggle(c, ctrl.engageService.ToggleBookmark, "收藏成功", "已取消收藏")
}

// toggle 是博客互动端点的公共骨架：解析参数、调用服务、按切换结果返回消息。
func (ctrl *BlogController) toggle(c *gin.Context, fn func(ctx context.Context, blogID uint64, userID string) (bool, error), onMsg, offMsg string) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	active, err := fn(c.Request.Context(), blogID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if active {
		response.RespondMessage(c, http.StatusOK, onMsg)
		return
	}
	response.RespondMessage(c, http.StatusOK, offMsg)
}

// ReportBlog 举报博客
// @Summary      举报博客
// @Description  提交对博客的举报。同一用户对同一博客只能举报一次。
// @Tags         blogs (博客)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Param        request body dto.CreateReportRequest true "举报理由"
// @Success      201 {object} vo.ReportVOWrapper "举报已受理"
// @Failure      409 {object} vo.BaseResponseWrapper "重复举报"
// @Router       /blogs/{id}/report [post]
func (ctrl *BlogController) ReportBlog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	report, err := ctrl.reportService.CreateReport(c.Request.Context(), blogID, userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusCreated, report, "举报已受理")
}

// RegisterRoutes 注册博客相关路由。
func (ctrl *BlogController) RegisterRoutes(rg *gin.RouterGroup, userAuth, optionalAuth gin.HandlerFunc) {
	blogs := rg.Group("/blogs")
	{
		blogs.GET("", ctrl.ListBlogs)
		blogs.GET("/popular", ctrl.GetPopularBlogs)
		blogs.GET("/me/blogs", userAuth, ctrl.GetMyBlogs)
		blogs.GET("/me/bookmarks", userAuth, ctrl.GetMyBookmarks)
		blogs.GET("/:id", optionalAuth, ctrl.GetBlog)
		blogs.POST("", userAuth, ctrl.CreateBlog)
		blogs.POST("/cover", userAuth, ctrl.UploadCover)
		blogs.PUT("/:id", userAuth, ctrl.UpdateBlog)
		blogs.DELETE("/:id", userAuth, ctrl.DeleteBlog)

		blogs.PUT("/:id/like", userAuth, ctrl.ToggleLike)
		blogs.PUT("/:id/dislike", userAuth, ctrl.ToggleDislike)
		blogs.PUT("/:id/bookmark", userAuth, ctrl.ToggleBookmark)
		blogs.POST("/:id/report", userAuth, ctrl.ReportBlog)
	}
}
