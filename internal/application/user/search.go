package user

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/user"
)

// SearchResultLimit 用户搜索最多返回的条数
const SearchResultLimit = 10

// SearchUseCase 用户搜索用例
type SearchUseCase struct {
	userService user.Service
}

// NewSearchUseCase 创建用户搜索用例
func NewSearchUseCase(userService user.Service) *SearchUseCase {
	return &SearchUseCase{userService: userService}
}

// Execute 按用户名模糊搜索，只输出公开字段
func (uc *SearchUseCase) Execute(ctx context.Context, keyword string) ([]SearchItem, error) {
	users, err := uc.userService.Search(ctx, keyword, SearchResultLimit)
	if err != nil {
		return nil, err
	}

	items := make([]SearchItem, 0, len(users))
	for _, u := range users {
		items = append(items, SearchItem{ID: u.ID, Username: u.Username})
	}

	return items, nil
}

// SearchItem 搜索结果条目
type SearchItem struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
