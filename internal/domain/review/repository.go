package review

import (
	"context"
)

// Repository 评论仓储接口
// 设计说明：
// 1. 列表查询都是join后的读取模型（评论人用户名/图书信息），
//    一条查询出一页数据，不做逐条回查
// 2. 所有列表固定按创建时间倒序（最新的在前）
type Repository interface {
	// Create 插入评论
	// (user_id, book_id)违反联合唯一索引时返回ErrDuplicateReview
	Create(ctx context.Context, r *Review) error

	// FindByUserAndBook 查找某用户对某图书的评论
	// 不存在时返回ErrReviewNotFound
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error)

	// ListByBook 某图书的评论分页（带评论人用户名），按创建时间倒序
	// 返回当页数据和该图书的评论总数
	ListByBook(ctx context.Context, bookID uint, page, perPage int) ([]*WithUser, int64, error)

	// ListByUser 某用户的评论分页（带图书标题/作者），按创建时间倒序
	ListByUser(ctx context.Context, userID uint, page, perPage int) ([]*WithBook, int64, error)
}
