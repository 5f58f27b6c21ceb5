package response

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Status固定为"success"或"error"，客户端先看这个字段
// 2. Message是用户友好的提示信息，成功时可省略
// 3. Data是业务数据，失败时省略
// 4. Errors携带字段级校验错误（仅参数校验失败时出现）
// 5. Timestamp为服务端UTC时间（RFC3339），便于客户端排查时序问题
type Response struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Errors    interface{} `json:"errors,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status:    "success",
		Data:      data,
		Timestamp: now(),
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status:    "success",
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := submitReviewUseCase.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// HTTP状态码由业务错误码映射得到（pkg/errors.HTTPStatus）。
// 内部错误详情只进日志，客户端只看到用户友好的Message。
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.Err != nil {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
	}

	c.JSON(apperrors.HTTPStatus(appErr.Code), Response{
		Status:    "error",
		Message:   appErr.Message,
		Timestamp: now(),
	})
}

// ValidationError 参数校验失败响应（400）
// errs携带字段级错误信息（如binding校验的详情）
func ValidationError(c *gin.Context, message string, errs interface{}) {
	c.JSON(http.StatusBadRequest, Response{
		Status:    "error",
		Message:   message,
		Errors:    errs,
		Timestamp: now(),
	})
}

// =========================================
// 分页响应结构
// =========================================

// Pagination 分页元数据
type Pagination struct {
	Page       int   `json:"page"`        // 当前页码
	PerPage    int   `json:"per_page"`    // 每页大小
	Total      int64 `json:"total"`       // 总记录数
	TotalPages int   `json:"total_pages"` // 总页数 = ceil(total/per_page)
}

// NewPagination 计算分页元数据
func NewPagination(page, perPage int, total int64) Pagination {
	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}

	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
