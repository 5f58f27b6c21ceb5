package book

import (
	"context"
	"log"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
)

// CreateBookUseCase 创建图书用例
type CreateBookUseCase struct {
	bookService book.Service
	cache       *redis.BookListCache
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(bookService book.Service, cache *redis.BookListCache) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行创建
// 新图书会出现在列表里，写入成功后使列表缓存整体失效
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*CreateBookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, req.Title, req.Author, req.Description)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			log.Printf("[WARN] 图书列表缓存失效失败: %v", err)
		}
	}

	return &CreateBookResponse{BookID: b.ID}, nil
}

// CreateBookRequest 创建图书请求
type CreateBookRequest struct {
	Title       string
	Author      string
	Description string
}

// CreateBookResponse 创建图书响应
type CreateBookResponse struct {
	BookID uint `json:"book_id"`
}
