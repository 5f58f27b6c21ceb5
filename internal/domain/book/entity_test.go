package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRoundRating1 平均分舍入口径：四舍五入保留1位小数
func TestRoundRating1(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"无评论零值", 0, 0},
		{"整数不变", 4, 4.0},
		{"一位小数不变", 4.5, 4.5},
		{"向下舍", 4.44, 4.4},
		{"恰好一半向上入", 4.45, 4.5},
		{"向上入", 4.46, 4.5},
		{"三条评论的均值", 11.0 / 3.0, 3.7}, // 3.666... → 3.7
		{"两条评论的均值", 7.0 / 2.0, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundRating1(tt.in), 1e-9)
		})
	}
}

// TestListParams_Normalize 列表参数归一化
func TestListParams_Normalize(t *testing.T) {
	const (
		defaultPerPage = 10
		maxPerPage     = 50
	)

	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{
			name: "全部零值取默认",
			in:   ListParams{},
			want: ListParams{SortBy: SortByTitle, SortOrder: OrderAsc, Page: 1, PerPage: 10},
		},
		{
			name: "合法参数原样保留",
			in:   ListParams{Search: "go", SortBy: SortByRating, SortOrder: OrderDesc, Page: 3, PerPage: 20},
			want: ListParams{Search: "go", SortBy: SortByRating, SortOrder: OrderDesc, Page: 3, PerPage: 20},
		},
		{
			name: "非法排序字段回落title",
			in:   ListParams{SortBy: "price", SortOrder: "desc", Page: 1, PerPage: 10},
			want: ListParams{SortBy: SortByTitle, SortOrder: OrderDesc, Page: 1, PerPage: 10},
		},
		{
			name: "非法排序方向回落asc",
			in:   ListParams{SortBy: SortByPopularity, SortOrder: "sideways", Page: 1, PerPage: 10},
			want: ListParams{SortBy: SortByPopularity, SortOrder: OrderAsc, Page: 1, PerPage: 10},
		},
		{
			name: "页码小于1钳制到1",
			in:   ListParams{Page: -2, PerPage: 10},
			want: ListParams{SortBy: SortByTitle, SortOrder: OrderAsc, Page: 1, PerPage: 10},
		},
		{
			name: "PerPage超上限钳制到max",
			in:   ListParams{Page: 1, PerPage: 500},
			want: ListParams{SortBy: SortByTitle, SortOrder: OrderAsc, Page: 1, PerPage: 50},
		},
		{
			name: "PerPage为负钳制到1",
			in:   ListParams{Page: 1, PerPage: -5},
			want: ListParams{SortBy: SortByTitle, SortOrder: OrderAsc, Page: 1, PerPage: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize(defaultPerPage, maxPerPage)
			assert.Equal(t, tt.want, p)
		})
	}
}
