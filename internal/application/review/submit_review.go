package review

import (
	"context"
	"log"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
)

// SubmitReviewUseCase 提交评论用例
// 设计说明：
// 1. 准入规则（校验/图书存在/查重/并发控制）全部在领域服务里，
//    用例层只负责编排缓存失效
// 2. 评论写入会改变图书的平均分和热度，需使列表缓存失效
type SubmitReviewUseCase struct {
	reviewService review.Service
	cache         *redis.BookListCache
}

// NewSubmitReviewUseCase 创建提交评论用例
func NewSubmitReviewUseCase(reviewService review.Service, cache *redis.BookListCache) *SubmitReviewUseCase {
	return &SubmitReviewUseCase{
		reviewService: reviewService,
		cache:         cache,
	}
}

// Execute 执行提交
func (uc *SubmitReviewUseCase) Execute(ctx context.Context, req SubmitReviewRequest) (*SubmitReviewResponse, error) {
	r, err := uc.reviewService.Submit(ctx, req.UserID, req.BookID, req.Text, req.Rating)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			log.Printf("[WARN] 图书列表缓存失效失败: %v", err)
		}
	}

	return &SubmitReviewResponse{ReviewID: r.ID}, nil
}

// SubmitReviewRequest 提交评论请求
type SubmitReviewRequest struct {
	UserID uint
	BookID uint
	Text   string
	Rating int
}

// SubmitReviewResponse 提交评论响应
type SubmitReviewResponse struct {
	ReviewID uint `json:"review_id"`
}
