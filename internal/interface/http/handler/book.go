package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookreview/internal/application/book"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listUseCase   *appbook.ListBooksUseCase
	createUseCase *appbook.CreateBookUseCase
	getUseCase    *appbook.GetBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listUseCase *appbook.ListBooksUseCase,
	createUseCase *appbook.CreateBookUseCase,
	getUseCase *appbook.GetBookUseCase,
) *BookHandler {
	return &BookHandler{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
	}
}

// List 图书列表（搜索/排序/分页，含评分统计）
// GET /api/v1/books?search=&sort=&order=&page=&per_page=
func (h *BookHandler) List(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	// sort/order的白名单校验在Normalize里：不认识的值回落默认，不报错
	result, err := h.listUseCase.Execute(c.Request.Context(), book.ListParams{
		Search:    query.Search,
		SortBy:    query.Sort,
		SortOrder: query.Order,
		Page:      query.Page,
		PerPage:   query.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Create 创建图书
// POST /api/v1/books（需登录）
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "图书创建成功", result)
}

// Get 图书详情（含实时评分统计）
// GET /api/v1/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
