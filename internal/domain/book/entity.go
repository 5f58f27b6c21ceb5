package book

import (
	"math"
	"time"
)

// Book 图书实体（聚合根）
// DDD设计说明：
// 1. Book只包含图书自身的属性，评分统计不落库（见Stats）
// 2. 标题+作者不做存储层唯一约束，仅导入工具会在插入前查重
// 3. 图书只创建不更新不删除
type Book struct {
	ID          uint
	Title       string
	Author      string
	Description string // 可选，默认空串
	CreatedAt   time.Time
}

// NewBook 创建新图书（工厂方法）
func NewBook(title, author, description string) *Book {
	return &Book{
		Title:       title,
		Author:      author,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

// Stats 图书评分统计（派生数据）
// 设计说明：
// 1. 永远从reviews集合实时计算，不存储在Book上——写入侧不需要任何
//    同步逻辑，读取侧永远是正确的
// 2. 没有任何评论时为{0, 0}零值，而不是null或缺省
type Stats struct {
	AverageRating float64 `json:"average_rating"` // 平均分，保留1位小数
	TotalRatings  int64   `json:"total_ratings"`  // 评论总数
}

// WithStats 图书+评分统计（列表/详情的读取模型）
type WithStats struct {
	Book
	Stats
}

// RoundRating1 平均分保留1位小数
// 舍入规则：四舍五入（half away from zero），如4.45 → 4.5
// 整个系统的平均分展示统一走这里，保证舍入口径一致
func RoundRating1(avg float64) float64 {
	return math.Round(avg*10) / 10
}
