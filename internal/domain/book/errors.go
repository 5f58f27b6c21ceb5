package book

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidTitle 书名不能为空
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrInvalidAuthor 作者不能为空
	ErrInvalidAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")
)
