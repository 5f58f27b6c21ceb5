package book

import (
	"context"
	"strings"
)

// Service 图书领域服务接口
// 设计说明：
// 1. 领域服务封装业务规则校验和统计的舍入口径
// 2. 不依赖具体的Repository实现（依赖倒置）
type Service interface {
	// CreateBook 创建图书
	// 业务规则：书名、作者非空；描述可空
	CreateBook(ctx context.Context, title, author, description string) (*Book, error)

	// GetBookByID 根据ID获取图书
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookWithStats 图书详情+实时评分统计
	GetBookWithStats(ctx context.Context, id uint) (*WithStats, error)

	// ListBooks 分页查询图书列表（含统计），params需已Normalize
	ListBooks(ctx context.Context, params ListParams) ([]*WithStats, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title, author, description string) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if title == "" {
		return nil, ErrInvalidTitle
	}
	if author == "" {
		return nil, ErrInvalidAuthor
	}

	b := NewBook(title, author, strings.TrimSpace(description))

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookWithStats 图书详情+评分统计
// 统计永远实时派生：先查图书（不存在直接返回ErrBookNotFound），再算统计
func (s *service) GetBookWithStats(ctx context.Context, id uint) (*WithStats, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.StatsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats.AverageRating = RoundRating1(stats.AverageRating)

	return &WithStats{Book: *b, Stats: *stats}, nil
}

// ListBooks 分页查询图书列表
// 仓储返回原始均值，这里统一舍入到1位小数
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*WithStats, int64, error) {
	items, total, err := s.repo.ListWithStats(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	for _, item := range items {
		item.AverageRating = RoundRating1(item.AverageRating)
	}

	return items, total, nil
}
