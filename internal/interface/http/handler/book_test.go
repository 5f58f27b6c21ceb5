package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/bookreview/internal/application/book"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
)

type stubBookService struct {
	books map[uint]*book.WithStats
}

func (s *stubBookService) CreateBook(ctx context.Context, title, author, description string) (*book.Book, error) {
	return &book.Book{ID: 1, Title: title, Author: author}, nil
}

func (s *stubBookService) GetBookByID(ctx context.Context, id uint) (*book.Book, error) {
	if item, ok := s.books[id]; ok {
		return &item.Book, nil
	}
	return nil, book.ErrBookNotFound
}

func (s *stubBookService) GetBookWithStats(ctx context.Context, id uint) (*book.WithStats, error) {
	if item, ok := s.books[id]; ok {
		return item, nil
	}
	return nil, book.ErrBookNotFound
}

func (s *stubBookService) ListBooks(ctx context.Context, params book.ListParams) ([]*book.WithStats, int64, error) {
	items := make([]*book.WithStats, 0, len(s.books))
	for _, item := range s.books {
		items = append(items, item)
	}
	return items, int64(len(items)), nil
}

// envelope 统一响应结构（与pkg/response一致）
type envelope struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func newBookRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &stubBookService{
		books: map[uint]*book.WithStats{
			1: {
				Book:  book.Book{ID: 1, Title: "Dune", Author: "Frank Herbert"},
				Stats: book.Stats{AverageRating: 4.5, TotalRatings: 2},
			},
		},
	}

	pagination := config.PaginationConfig{DefaultPerPage: 10, MaxPerPage: 50}
	h := NewBookHandler(
		appbook.NewListBooksUseCase(svc, nil, pagination),
		appbook.NewCreateBookUseCase(svc, nil),
		appbook.NewGetBookUseCase(svc),
	)

	r := gin.New()
	r.GET("/api/v1/books", h.List)
	r.GET("/api/v1/books/:id", h.Get)
	return r
}

// TestBookHandler_Get 图书详情的状态码与响应信封
func TestBookHandler_Get(t *testing.T) {
	r := newBookRouter(t)

	t.Run("存在的图书返回200", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books/1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.NotEmpty(t, resp.Timestamp)

		var item struct {
			BookID        uint    `json:"book_id"`
			Title         string  `json:"title"`
			AverageRating float64 `json:"average_rating"`
			TotalRatings  int64   `json:"total_ratings"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &item))
		assert.Equal(t, uint(1), item.BookID)
		assert.Equal(t, "Dune", item.Title)
		assert.Equal(t, 4.5, item.AverageRating)
		assert.Equal(t, int64(2), item.TotalRatings)
	})

	t.Run("不存在的图书返回404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books/999", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("非数字ID返回400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books/abc", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
	})
}

// TestBookHandler_List 列表响应的分页结构
func TestBookHandler_List(t *testing.T) {
	r := newBookRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/books?sort=rating&order=desc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)

	var data struct {
		List       []json.RawMessage `json:"list"`
		Pagination struct {
			Page       int   `json:"page"`
			PerPage    int   `json:"per_page"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))

	assert.Len(t, data.List, 1)
	assert.Equal(t, 1, data.Pagination.Page)
	assert.Equal(t, 10, data.Pagination.PerPage, "未传per_page时取默认值")
	assert.Equal(t, int64(1), data.Pagination.Total)
	assert.Equal(t, 1, data.Pagination.TotalPages)
}
