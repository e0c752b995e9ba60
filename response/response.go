package response

import "github.com/gin-gonic/gin"

// 统一响应信封。
// - 成功: { "success": true, "message"?, "data"? }
// - 失败: { "success": false, "message", "errors"? }
// 所有 handler 通过本包输出 JSON，不允许各自拼装错误结构。

// Envelope 是带负载的成功响应结构。
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorEnvelope 是失败响应结构。
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// RespondData 以指定状态码返回带负载的成功响应。
func RespondData[T any](c *gin.Context, status int, data T, message string) {
	c.JSON(status, Envelope[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondMessage 返回只有提示信息的成功响应（例如删除、切换类操作）。
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope[any]{
		Success: true,
		Message: message,
	})
}

// RespondError 返回失败响应并中止后续 handler。
func RespondError(c *gin.Context, status int, message string, details ...string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Success: false,
		Message: message,
		Errors:  details,
	})
}
