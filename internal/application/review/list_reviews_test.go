package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
)

type mockReviewService struct {
	submitFn          func(ctx context.Context, userID, bookID uint, text string, rating int) (*review.Review, error)
	listBookReviewsFn func(ctx context.Context, bookID uint, page, perPage int) ([]*review.WithUser, int64, error)
	listUserReviewsFn func(ctx context.Context, userID uint, page, perPage int) ([]*review.WithBook, int64, error)
}

func (m *mockReviewService) Submit(ctx context.Context, userID, bookID uint, text string, rating int) (*review.Review, error) {
	return m.submitFn(ctx, userID, bookID, text, rating)
}

func (m *mockReviewService) ListBookReviews(ctx context.Context, bookID uint, page, perPage int) ([]*review.WithUser, int64, error) {
	return m.listBookReviewsFn(ctx, bookID, page, perPage)
}

func (m *mockReviewService) ListUserReviews(ctx context.Context, userID uint, page, perPage int) ([]*review.WithBook, int64, error) {
	return m.listUserReviewsFn(ctx, userID, page, perPage)
}

var testPagination = config.PaginationConfig{DefaultPerPage: 10, MaxPerPage: 50}

// TestListReviewsUseCase_NormalizesPage 分页参数规范化
// 口径必须与图书列表一致：per_page未传用默认值，负数钳到1，超上限钳到上限
func TestListReviewsUseCase_NormalizesPage(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"正常参数", 2, 20, 2, 20},
		{"未传per_page用默认值", 1, 0, 1, 10},
		{"负数per_page钳到1", 1, -5, 1, 1},
		{"超上限钳到上限", 1, 500, 1, 50},
		{"非法页码归1", 0, 20, 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPage, gotPerPage int
			svc := &mockReviewService{
				listBookReviewsFn: func(ctx context.Context, bookID uint, page, perPage int) ([]*review.WithUser, int64, error) {
					gotPage, gotPerPage = page, perPage
					return nil, 0, nil
				},
			}
			uc := NewListReviewsUseCase(svc, testPagination)

			_, err := uc.Execute(context.Background(), 1, tt.page, tt.perPage)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, gotPage)
			assert.Equal(t, tt.wantPerPage, gotPerPage)
		})
	}
}

// TestListReviewsUseCase_Response 评论列表响应组装
func TestListReviewsUseCase_Response(t *testing.T) {
	svc := &mockReviewService{
		listBookReviewsFn: func(ctx context.Context, bookID uint, page, perPage int) ([]*review.WithUser, int64, error) {
			assert.Equal(t, uint(7), bookID)
			return []*review.WithUser{
				{Review: review.Review{ID: 3, UserID: 1, BookID: 7, Text: "好书", Rating: 5}, Username: "book_lover"},
			}, 11, nil
		},
	}
	uc := NewListReviewsUseCase(svc, testPagination)

	resp, err := uc.Execute(context.Background(), 7, 1, 10)
	require.NoError(t, err)

	require.Len(t, resp.List, 1)
	assert.Equal(t, uint(3), resp.List[0].ReviewID)
	assert.Equal(t, "book_lover", resp.List[0].Username)
	assert.Equal(t, int64(11), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}
