package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Problem 统一错误响应结构
type Problem struct {
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
	Type   string `json:"type"`
}

// Success 成功响应，直接输出资源本身
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// NoContent 204 响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			_ = c.Error(appErr.Err)
		}
		c.JSON(appErr.Status, NewProblem(appErr.Status, appErr.Title, appErr.Detail))
		return
	}

	// 未知错误统一按 500 处理
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, NewProblem(http.StatusInternalServerError, TitleInternal, err.Error()))
}

// ErrorWithDetail 带详细信息的错误响应
func ErrorWithDetail(c *gin.Context, status int, title, detail string) {
	c.JSON(status, NewProblem(status, title, detail))
}

// AbortWithError 中间件中使用，输出错误并中断后续处理
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// NewProblem 构造错误文档
func NewProblem(status int, title, detail string) Problem {
	link, ok := TypeLinks[status]
	if !ok {
		link = TypeLinks[http.StatusInternalServerError]
	}
	return Problem{
		Detail: detail,
		Status: status,
		Title:  title,
		Type:   link,
	}
}
