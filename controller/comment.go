package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// CommentController 定义评论控制器的结构体
type CommentController struct {
	commentService service.CommentService
	engageService  service.EngagementService
}

// NewCommentController 构造函数，用于创建 CommentController 实例
func NewCommentController(commentService service.CommentService, engageService service.EngagementService) *CommentController {
	return &CommentController{
		commentService: commentService,
		engageService:  engageService,
	}
}

// CreateComment 发表评论
// @Summary      发表评论
// @Description  对指定博客发表顶层评论。博客必须处于公开状态且未关闭评论。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "博客ID"
// @Param        request body dto.CreateCommentRequest true "评论内容"
// @Success      201 {object} vo.CommentVOWrapper "评论成功"
// @Failure      403 {object} vo.BaseResponseWrapper "该博客已关闭评论"
// @Failure      404 {object} vo.BaseResponseWrapper "博客不存在或已下架"
// @Router       /comments/{id} [post]
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	comment, err := ctrl.commentService.CreateComment(c.Request.Context(), blogID, userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusCreated, comment, "评论成功")
}

// ListComments 查询博客评论树
// @Summary      评论列表
// @Description  查询指定博客的全部评论，按父子关系组装成树后返回。
// @Tags         comments (评论)
// @Produce      json
// @Param        id path int true "博客ID"
// @Success      200 {object} vo.CommentListVOWrapper "评论树"
// @Failure      404 {object} vo.BaseResponseWrapper "博客不存在或已下架"
// @Router       /comments/{id} [get]
func (ctrl *CommentController) ListComments(c *gin.Context) {
	blogID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	list, err := ctrl.commentService.ListComments(c.Request.Context(), blogID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, list, "")
}

// ReplyComment 回复评论
// @Summary      回复评论
// @Description  对指定评论发表回复，回复与父评论属于同一篇博客。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "父评论ID"
// @Param        request body dto.UpdateCommentRequest true "回复内容"
// @Success      201 {object} vo.CommentVOWrapper "回复成功"
// @Failure      404 {object} vo.BaseResponseWrapper "父评论不存在"
// @Router       /comments/{id}/reply [post]
func (ctrl *CommentController) ReplyComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	parentID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}
	var body dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	comment, err := ctrl.commentService.ReplyToComment(c.Request.Context(), parentID, userID, body.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusCreated, comment, "回复成功")
}

// UpdateComment 修改评论
// @Summary      修改评论
// @Description  修改评论内容，仅评论作者本人可操作。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Param        request body dto.UpdateCommentRequest true "新的评论内容"
// @Success      200 {object} vo.CommentVOWrapper "修改成功"
// @Failure      403 {object} vo.BaseResponseWrapper "非评论作者"
// @Router       /comments/{id} [put]
func (ctrl *CommentController) UpdateComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "请求参数无效", err.Error())
		return
	}

	comment, err := ctrl.commentService.UpdateComment(c.Request.Context(), commentID, userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, comment, "修改成功")
}

// DeleteComment 删除评论
// @Summary      删除评论
// @Description  删除评论及其全部子孙回复。评论作者或所在博客的作者可操作。
// @Tags         comments (评论)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权删除该评论"
// @Router       /comments/{id} [delete]
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	if err := ctrl.commentService.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "评论删除成功")
}

// ToggleLike 切换评论点赞
// @Summary      切换评论点赞
// @Description  未点赞则点赞，已点赞则取消。
// @Tags         comments (评论)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Success      200 {object} vo.BaseResponseWrapper "切换成功"
// @Router       /comments/{id}/like [put]
func (ctrl *CommentController) ToggleLike(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUint64Param(c, "id")
	if !ok {
		return
	}

	liked, err := ctrl.engageService.ToggleCommentLike(c.Request.Context(), commentID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if liked {
		response.RespondMessage(c, http.StatusOK, "点赞成功")
		return
	}
	response.RespondMessage(c, http.StatusOK, "已取消点赞")
}

// RegisterRoutes 注册评论相关路由。
func (ctrl *CommentController) RegisterRoutes(rg *gin.RouterGroup, userAuth gin.HandlerFunc) {
	comments := rg.Group("/comments")
	{
		comments.POST("/:id", userAuth, ctrl.CreateComment)
		comments.GET("/:id", ctrl.ListComments)
		comments.POST("/:id/reply", userAuth, ctrl.ReplyComment)
		comments.PUT("/:id", userAuth, ctrl.UpdateComment)
		comments.DELETE("/:id", userAuth, ctrl.DeleteComment)
		comments.PUT("/:id/like", userAuth, ctrl.ToggleLike)
	}
}
