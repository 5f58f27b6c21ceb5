package book

import (
	"context"
)

// 排序字段取值
// rating → 平均分，popularity → 评论数，其余一律按title
const (
	SortByTitle      = "title"
	SortByRating     = "rating"
	SortByPopularity = "popularity"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams 列表查询参数
// Search为不区分大小写的子串匹配，命中title、author、description任一即可
type ListParams struct {
	Search    string // 搜索关键词，空串表示不过滤
	SortBy    string // title | rating | popularity
	SortOrder string // asc | desc
	Page      int    // 页码（从1开始）
	PerPage   int    // 每页数量
}

// Normalize 参数归一化
// 规则（与HTTP层契约一致）：
// - SortBy非法值回落到title，SortOrder非法值回落到asc
// - Page < 1 → 1
// - PerPage钳制到[1, maxPerPage]，0表示取默认值
func (p *ListParams) Normalize(defaultPerPage, maxPerPage int) {
	switch p.SortBy {
	case SortByRating, SortByPopularity:
	default:
		p.SortBy = SortByTitle
	}

	if p.SortOrder != OrderDesc {
		p.SortOrder = OrderAsc
	}

	if p.Page < 1 {
		p.Page = 1
	}

	if p.PerPage == 0 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Repository 图书仓储接口
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. ListWithStats是聚合引擎的批量入口：一条join/group查询算出当前页
//    每本书的统计，绝不允许每本书单查一次（N+1）
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 如果不存在，返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// ExistsByTitleAuthor 标题+作者查重（导入工具用）
	ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error)

	// ListWithStats 分页查询图书列表，每条记录带派生统计
	// 返回当页数据和过滤后的总数；零评论图书的统计为{0, 0}
	// 平均分由调用方用RoundRating1舍入（仓储返回原始均值）
	ListWithStats(ctx context.Context, params ListParams) ([]*WithStats, int64, error)

	// StatsByID 单本图书的评分统计
	// 图书没有评论时返回{0, 0}；不校验图书是否存在
	StatsByID(ctx context.Context, id uint) (*Stats, error)
}
