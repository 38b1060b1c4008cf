package responses

import (
	"fmt"
	"net/http"
)

// 错误类型文档地址，type 字段指向 API 文档中对应的错误章节
const ErrorDocBaseURL = "https://conn-hub.readthedocs.io/en/stable/rest-api-ref.html#section/Errors/"

// TypeLinks status -> 错误文档链接
var TypeLinks = map[int]string{
	http.StatusBadRequest:          ErrorDocBaseURL + "BadRequest",
	http.StatusUnauthorized:        ErrorDocBaseURL + "Unauthenticated",
	http.StatusForbidden:           ErrorDocBaseURL + "PermissionDenied",
	http.StatusNotFound:            ErrorDocBaseURL + "NotFound",
	http.StatusConflict:            ErrorDocBaseURL + "AlreadyExists",
	http.StatusInternalServerError: ErrorDocBaseURL + "Unknown",
}

// 默认标题
const (
	TitleBadRequest      = "Bad Request"
	TitleUnauthenticated = "Unauthorized"
	TitleForbidden       = "Forbidden"
	TitleNotFound        = "Not Found"
	TitleConflict        = "Conflict"
	TitleInternal        = "Internal Server Error"
)

// AppError 应用错误，Status 即 HTTP 状态码
type AppError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Err    error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %s: %v", e.Status, e.Title, e.Detail, e.Err)
	}
	return fmt.Sprintf("[%d] %s: %s", e.Status, e.Title, e.Detail)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同 Status 同 Title 视为同类错误，便于 errors.Is 判断预定义错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Title == t.Title
}

// New 创建新错误
func New(status int, title, detail string) *AppError {
	return &AppError{
		Status: status,
		Title:  title,
		Detail: detail,
	}
}

// Wrap 包装错误
func Wrap(status int, detail string, err error) *AppError {
	return &AppError{
		Status: status,
		Title:  http.StatusText(status),
		Detail: detail,
		Err:    err,
	}
}

func BadRequest(detail string) *AppError {
	return New(http.StatusBadRequest, TitleBadRequest, detail)
}

func Unauthorized(detail string) *AppError {
	return New(http.StatusUnauthorized, TitleUnauthenticated, detail)
}

func Forbidden(detail string) *AppError {
	return New(http.StatusForbidden, TitleForbidden, detail)
}

// NotFound title 允许按资源定制，如 "Connection not found"
func NotFound(title, detail string) *AppError {
	return New(http.StatusNotFound, title, detail)
}

func Conflict(detail string) *AppError {
	return New(http.StatusConflict, TitleConflict, detail)
}

// 预定义错误
var (
	ErrUnauthorized   = Unauthorized("Request not authenticated")
	ErrForbidden      = Forbidden("Access is denied")
	ErrInvalidToken   = Unauthorized("Invalid token")
	ErrTokenExpired   = Unauthorized("Token has expired")
	ErrRecordNotFound = NotFound(TitleNotFound, "Record not found")
	ErrRecordExists   = Conflict("Record already exists")
)
