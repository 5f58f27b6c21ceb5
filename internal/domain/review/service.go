package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/xiebiao/bookreview/internal/domain/book"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/keylock"
)

// Service 评论领域服务
// 设计说明：
// 1. Submit是评论的admission入口：校验→图书存在性→查重→插入
// 2. 查重-插入是check-then-act序列，并发时两个请求可能都通过查重。
//    这里用两道防线关闭竞态：
//    - 进程内按(user_id, book_id)加KeyLock，把临界区串行化
//    - 数据库(user_id, book_id)联合唯一索引兜底（多实例部署时进程内锁
//      不够），仓储把索引冲突转换为同一个ErrDuplicateReview
type Service interface {
	// Submit 提交评论
	Submit(ctx context.Context, userID, bookID uint, text string, rating int) (*Review, error)

	// ListBookReviews 某图书的评论分页，最新的在前
	ListBookReviews(ctx context.Context, bookID uint, page, perPage int) ([]*WithUser, int64, error)

	// ListUserReviews 某用户的评论分页，最新的在前
	ListUserReviews(ctx context.Context, userID uint, page, perPage int) ([]*WithBook, int64, error)
}

type service struct {
	repo  Repository
	books book.Repository
	locks *keylock.KeyLock
}

// NewService 创建评论领域服务
func NewService(repo Repository, books book.Repository) Service {
	return &service{
		repo:  repo,
		books: books,
		locks: keylock.New(),
	}
}

// Submit 提交评论
// 业务规则（顺序即校验顺序）：
// 1. 评论内容非空、评分在[1,5]内——否则参数错误，不产生任何写入
// 2. 图书必须存在——否则ErrBookNotFound，不产生孤儿评论
// 3. 同一(user, book)已有评论——ErrDuplicateReview，不产生写入
// 4. 插入评论，ID和时间戳由服务端分配
func (s *service) Submit(ctx context.Context, userID, bookID uint, text string, rating int) (*Review, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}

	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return nil, err // ErrBookNotFound原样透出
	}

	// 串行化同一(user, book)的查重-插入临界区
	key := fmt.Sprintf("review:%d:%d", userID, bookID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	existing, err := s.repo.FindByUserAndBook(ctx, userID, bookID)
	if err != nil && apperrors.GetAppError(err).Code != apperrors.ErrCodeReviewNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	r := NewReview(userID, bookID, text, rating)
	if err := s.repo.Create(ctx, r); err != nil {
		// 唯一索引兜底：输掉竞态的那次插入也表现为重复评论
		return nil, err
	}

	return r, nil
}

// ListBookReviews 某图书的评论分页
func (s *service) ListBookReviews(ctx context.Context, bookID uint, page, perPage int) ([]*WithUser, int64, error) {
	// 图书不存在时返回404而不是空列表
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByBook(ctx, bookID, page, perPage)
}

// ListUserReviews 某用户的评论分页
func (s *service) ListUserReviews(ctx context.Context, userID uint, page, perPage int) ([]*WithBook, int64, error) {
	return s.repo.ListByUser(ctx, userID, page, perPage)
}
