package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/review"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// reviewRepository 评论仓储实现（MySQL）
// 设计说明：
// 1. Create把uk_user_book唯一索引冲突转换为ErrDuplicateReview，
//    与admission逻辑查重命中的错误完全一致——调用方感知不到
//    自己是输掉竞态的那一方
// 2. 列表查询一条JOIN取出整页（评论+用户名/图书信息），不回查
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 插入评论
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		UserID: rv.UserID,
		BookID: rv.BookID,
		Text:   rv.Text,
		Rating: rv.Rating,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrDuplicateReview
		}
		return apperrors.Wrap(err, "创建评论失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt

	return nil
}

// FindByUserAndBook 查找某用户对某图书的评论
func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评论失败")
	}

	return toReviewEntity(&model), nil
}

// reviewUserRow 图书评论列表的扫描行
type reviewUserRow struct {
	ID        uint
	UserID    uint
	BookID    uint
	Text      string
	Rating    int
	CreatedAt time.Time
	Username  string
}

// ListByBook 某图书的评论分页（带评论人用户名）
// 按创建时间倒序，同秒内的记录再按ID倒序保证翻页不重不漏
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint, page, perPage int) ([]*review.WithUser, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("book_id = ?", bookID).
		Count(&total).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评论总数失败")
	}

	var rows []reviewUserRow
	err = r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("reviews.id, reviews.user_id, reviews.book_id, reviews.text, reviews.rating, "+
			"reviews.created_at, users.username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评论列表失败")
	}

	items := make([]*review.WithUser, len(rows))
	for i, row := range rows {
		items[i] = &review.WithUser{
			Review: review.Review{
				ID:        row.ID,
				UserID:    row.UserID,
				BookID:    row.BookID,
				Text:      row.Text,
				Rating:    row.Rating,
				CreatedAt: row.CreatedAt,
			},
			Username: row.Username,
		}
	}

	return items, total, nil
}

// reviewBookRow 用户评论列表的扫描行
type reviewBookRow struct {
	ID         uint
	UserID     uint
	BookID     uint
	Text       string
	Rating     int
	CreatedAt  time.Time
	BookTitle  string
	BookAuthor string
}

// ListByUser 某用户的评论分页（带图书标题/作者）
func (r *reviewRepository) ListByUser(ctx context.Context, userID uint, page, perPage int) ([]*review.WithBook, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评论总数失败")
	}

	var rows []reviewBookRow
	err = r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("reviews.id, reviews.user_id, reviews.book_id, reviews.text, reviews.rating, "+
			"reviews.created_at, books.title AS book_title, books.author AS book_author").
		Joins("JOIN books ON books.id = reviews.book_id").
		Where("reviews.user_id = ?", userID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评论列表失败")
	}

	items := make([]*review.WithBook, len(rows))
	for i, row := range rows {
		items[i] = &review.WithBook{
			Review: review.Review{
				ID:        row.ID,
				UserID:    row.UserID,
				BookID:    row.BookID,
				Text:      row.Text,
				Rating:    row.Rating,
				CreatedAt: row.CreatedAt,
			},
			BookTitle:  row.BookTitle,
			BookAuthor: row.BookAuthor,
		}
	}

	return items, total, nil
}

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Text:      model.Text,
		Rating:    model.Rating,
		CreatedAt: model.CreatedAt,
	}
}
