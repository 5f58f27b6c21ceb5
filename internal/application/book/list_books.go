package book

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookreview/pkg/response"
)

// ListBooksUseCase 图书列表用例
// 设计说明：
// 1. 入参规范化（排序白名单、分页钳制）在这一层做，
//    领域服务只接受已规范化的参数
// 2. 读路径先走Redis缓存，未命中回源数据库再写缓存；
//    缓存任何异常都降级为直查数据库，只记日志不报错
type ListBooksUseCase struct {
	bookService book.Service
	cache       *redis.BookListCache
	pagination  config.PaginationConfig
}

// NewListBooksUseCase 创建图书列表用例
// cache允许为nil（如单测、Redis未部署），此时退化为纯数据库查询
func NewListBooksUseCase(bookService book.Service, cache *redis.BookListCache, pagination config.PaginationConfig) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		cache:       cache,
		pagination:  pagination,
	}
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, params book.ListParams) (*ListBooksResponse, error) {
	params.Normalize(uc.pagination.DefaultPerPage, uc.pagination.MaxPerPage)

	// 1. 查缓存
	// cacheVersion记录本次读到的版本号，回填时沿用它——回源期间如果有
	// 评论/图书写入把版本号Bump了，这页旧数据会落在没人再读的旧key下
	cacheVersion := int64(-1)
	if uc.cache != nil {
		data, version, err := uc.cache.Get(ctx, params)
		switch {
		case err != nil:
			log.Printf("[WARN] 读取图书列表缓存失败，回源数据库: %v", err)
		case data != nil:
			var resp ListBooksResponse
			if err := json.Unmarshal(data, &resp); err != nil {
				log.Printf("[WARN] 图书列表缓存数据损坏，回源数据库: %v", err)
				cacheVersion = version
			} else {
				return &resp, nil
			}
		default:
			cacheVersion = version
		}
	}

	// 2. 回源数据库
	items, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]BookItem, 0, len(items))
	for _, item := range items {
		list = append(list, toBookItem(item))
	}

	resp := &ListBooksResponse{
		List:       list,
		Pagination: response.NewPagination(params.Page, params.PerPage, total),
	}

	// 3. 写缓存（失败不影响响应；版本读取失败时本次不回填）
	if uc.cache != nil && cacheVersion >= 0 {
		if data, err := json.Marshal(resp); err == nil {
			if err := uc.cache.Set(ctx, params, data, cacheVersion); err != nil {
				log.Printf("[WARN] 写入图书列表缓存失败: %v", err)
			}
		}
	}

	return resp, nil
}

// ListBooksResponse 图书列表响应
type ListBooksResponse struct {
	List       []BookItem          `json:"list"`
	Pagination response.Pagination `json:"pagination"`
}

// BookItem 列表/详情中的图书条目（含统计）
type BookItem struct {
	BookID        uint      `json:"book_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
	CreatedAt     time.Time `json:"created_at"`
}

func toBookItem(item *book.WithStats) BookItem {
	return BookItem{
		BookID:        item.ID,
		Title:         item.Title,
		Author:        item.Author,
		Description:   item.Description,
		AverageRating: item.AverageRating,
		TotalRatings:  item.TotalRatings,
		CreatedAt:     item.CreatedAt,
	}
}
