package review

import (
	"time"
)

// 评分边界
const (
	MinRating = 1
	MaxRating = 5
)

// Review 评论实体
// DDD设计说明：
// 1. (UserID, BookID)全局唯一——一个用户对一本书只能评论一次，
//    由admission逻辑+数据库联合唯一索引双重保证
// 2. Rating永远在[MinRating, MaxRating]内，越界的写入在持久化前被拒绝
// 3. 评论只创建不更新不删除，时间戳为服务端受理时间
type Review struct {
	ID        uint
	UserID    uint
	BookID    uint
	Text      string
	Rating    int
	CreatedAt time.Time
}

// NewReview 创建评论（工厂方法）
// 调用方（Service）负责校验text和rating
func NewReview(userID, bookID uint, text string, rating int) *Review {
	return &Review{
		UserID:    userID,
		BookID:    bookID,
		Text:      text,
		Rating:    rating,
		CreatedAt: time.Now(),
	}
}

// WithUser 评论+评论人公开信息（图书详情页的读取模型）
// 只带username，绝不带密码凭证
type WithUser struct {
	Review
	Username string
}

// WithBook 评论+图书信息（个人主页的读取模型）
type WithBook struct {
	Review
	BookTitle  string
	BookAuthor string
}
