package book

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// GetBookUseCase 图书详情用例
// 详情不走列表缓存：单行主键查询+一条聚合查询已经足够快，
// 引入缓存反而带来失效一致性负担
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 查询图书详情（含实时评分统计）
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookItem, error) {
	item, err := uc.bookService.GetBookWithStats(ctx, bookID)
	if err != nil {
		return nil, err
	}

	resp := toBookItem(item)
	return &resp, nil
}
