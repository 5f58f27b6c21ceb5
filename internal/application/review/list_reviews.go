package review

import (
	"context"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/pkg/response"
)

// ListReviewsUseCase 图书评论列表用例
type ListReviewsUseCase struct {
	reviewService review.Service
	pagination    config.PaginationConfig
}

// NewListReviewsUseCase 创建评论列表用例
func NewListReviewsUseCase(reviewService review.Service, pagination config.PaginationConfig) *ListReviewsUseCase {
	return &ListReviewsUseCase{
		reviewService: reviewService,
		pagination:    pagination,
	}
}

// Execute 查询某图书的评论分页（最新的在前）
func (uc *ListReviewsUseCase) Execute(ctx context.Context, bookID uint, page, perPage int) (*ListReviewsResponse, error) {
	page, perPage = normalizePage(page, perPage, uc.pagination)

	reviews, total, err := uc.reviewService.ListBookReviews(ctx, bookID, page, perPage)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewItem, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, ReviewItem{
			ReviewID:  r.ID,
			UserID:    r.UserID,
			Username:  r.Username,
			Text:      r.Text,
			Rating:    r.Rating,
			CreatedAt: r.CreatedAt,
		})
	}

	return &ListReviewsResponse{
		List:       items,
		Pagination: response.NewPagination(page, perPage, total),
	}, nil
}

// normalizePage 分页参数规范化，口径与图书列表（book.ListParams.Normalize）一致：
// per_page未传用默认值，负数钳到1，超上限钳到上限
func normalizePage(page, perPage int, cfg config.PaginationConfig) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage == 0 {
		perPage = cfg.DefaultPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > cfg.MaxPerPage {
		perPage = cfg.MaxPerPage
	}
	return page, perPage
}

// ListReviewsResponse 评论列表响应
type ListReviewsResponse struct {
	List       []ReviewItem        `json:"list"`
	Pagination response.Pagination `json:"pagination"`
}

// ReviewItem 图书评论条目（带评论者用户名）
type ReviewItem struct {
	ReviewID  uint      `json:"review_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
