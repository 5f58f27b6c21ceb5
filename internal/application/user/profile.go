package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/pkg/response"
)

// ProfileUseCase 用户主页用例
// 设计说明：
// 1. 编排两个领域：用户基础信息 + 该用户的评论分页
// 2. 本人主页与公开主页共用一个用例，区别只在是否输出邮箱
type ProfileUseCase struct {
	userService   user.Service
	reviewService review.Service
	pagination    config.PaginationConfig
}

// NewProfileUseCase 创建用户主页用例
func NewProfileUseCase(userService user.Service, reviewService review.Service, pagination config.PaginationConfig) *ProfileUseCase {
	return &ProfileUseCase{
		userService:   userService,
		reviewService: reviewService,
		pagination:    pagination,
	}
}

// Execute 查询本人主页（含邮箱）
func (uc *ProfileUseCase) Execute(ctx context.Context, userID uint, page, perPage int) (*ProfileResponse, error) {
	return uc.profile(ctx, userID, page, perPage, true)
}

// ExecutePublic 查询公开主页（不含邮箱等隐私字段）
func (uc *ProfileUseCase) ExecutePublic(ctx context.Context, userID uint, page, perPage int) (*ProfileResponse, error) {
	return uc.profile(ctx, userID, page, perPage, false)
}

func (uc *ProfileUseCase) profile(ctx context.Context, userID uint, page, perPage int, includeEmail bool) (*ProfileResponse, error) {
	// 分页口径与图书列表一致：page≥1，per_page未传用默认值、否则钳制到[1, max]
	if page < 1 {
		page = 1
	}
	if perPage == 0 {
		perPage = uc.pagination.DefaultPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > uc.pagination.MaxPerPage {
		perPage = uc.pagination.MaxPerPage
	}

	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, total, err := uc.reviewService.ListUserReviews(ctx, userID, page, perPage)
	if err != nil {
		return nil, err
	}

	items := make([]ProfileReviewItem, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, ProfileReviewItem{
			ReviewID:   r.ID,
			BookID:     r.BookID,
			BookTitle:  r.BookTitle,
			BookAuthor: r.BookAuthor,
			Text:       r.Text,
			Rating:     r.Rating,
			CreatedAt:  r.CreatedAt,
		})
	}

	resp := &ProfileResponse{
		UserID:     u.ID,
		Username:   u.Username,
		CreatedAt:  u.CreatedAt,
		Reviews:    items,
		Pagination: response.NewPagination(page, perPage, total),
	}
	if includeEmail {
		resp.Email = u.Email
	}

	return resp, nil
}

// ProfileResponse 用户主页响应
// Email字段仅本人主页输出，公开主页omitempty后不出现
type ProfileResponse struct {
	UserID     uint                `json:"user_id"`
	Username   string              `json:"username"`
	Email      string              `json:"email,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	Reviews    []ProfileReviewItem `json:"reviews"`
	Pagination response.Pagination `json:"pagination"`
}

// ProfileReviewItem 主页中的单条评论（带图书信息）
type ProfileReviewItem struct {
	ReviewID   uint      `json:"review_id"`
	BookID     uint      `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	BookAuthor string    `json:"book_author"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}
