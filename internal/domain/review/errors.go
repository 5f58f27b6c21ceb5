package review

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 评论领域错误定义
var (
	// ErrReviewNotFound 评论不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评论不存在")

	// ErrDuplicateReview 重复评论（同一用户对同一图书）
	ErrDuplicateReview = apperrors.New(apperrors.ErrCodeReviewDuplicate, "您已经评论过这本书了")

	// ErrEmptyText 评论内容为空
	ErrEmptyText = apperrors.New(apperrors.ErrCodeInvalidParams, "评论内容不能为空")

	// ErrInvalidRating 评分越界
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5之间")
)
