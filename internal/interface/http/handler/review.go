package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookreview/internal/application/review"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	submitUseCase *appreview.SubmitReviewUseCase
	listUseCase   *appreview.ListReviewsUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(
	submitUseCase *appreview.SubmitReviewUseCase,
	listUseCase *appreview.ListReviewsUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		submitUseCase: submitUseCase,
		listUseCase:   listUseCase,
	}
}

// Submit 提交评论
// POST /api/v1/books/:id/reviews（需登录）
func (h *ReviewHandler) Submit(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	result, err := h.submitUseCase.Execute(c.Request.Context(), appreview.SubmitReviewRequest{
		UserID: middleware.MustGetUserID(c),
		BookID: bookID,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "评论提交成功", result)
}

// ListByBook 某图书的评论分页（最新的在前）
// GET /api/v1/books/:id/reviews
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), bookID, query.Page, query.PerPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
