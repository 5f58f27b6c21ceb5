package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/book"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// bookRepository 图书仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/book/repository.go定义的接口
// 2. 聚合引擎的SQL都在这里：LEFT JOIN reviews + GROUP BY一次算出
//    当前页每本书的{平均分, 评论数}，零评论的书靠LEFT JOIN保留
//    并COALESCE成0——绝不逐本书单查（N+1）
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// ExistsByTitleAuthor 标题+作者查重（导入工具用）
func (r *bookRepository) ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookModel{}).
		Where("title = ? AND author = ?", title, author).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "图书查重失败")
	}
	return count > 0, nil
}

// listRow 列表查询的扫描行（图书字段+聚合列）
type listRow struct {
	ID            uint
	Title         string
	Author        string
	Description   string
	CreatedAt     time.Time
	AverageRating float64
	TotalRatings  int64
}

// ListWithStats 分页查询图书列表（含派生统计）
// 查询结构（对应一条SQL）：
//
//	SELECT books.*, COALESCE(AVG(reviews.rating), 0) AS average_rating,
//	       COUNT(reviews.id) AS total_ratings
//	FROM books LEFT JOIN reviews ON reviews.book_id = books.id
//	[WHERE title/author/description LIKE %kw%]
//	GROUP BY books.id ORDER BY <排序列> <方向> LIMIT ? OFFSET ?
//
// 说明：
// - 搜索用LIKE，utf8mb4默认collation天然不区分大小写
// - GROUP BY books.id合法（其余列函数依赖于主键）
// - 排序列可以是派生列average_rating/total_ratings，同值记录的先后
//   由存储自然顺序决定（稳定但不承诺具体顺序）
// - total单独COUNT过滤后的books，不走join
func (r *bookRepository) ListWithStats(ctx context.Context, params book.ListParams) ([]*book.WithStats, int64, error) {
	// 1. 查询过滤后的总数
	countQuery := r.db.WithContext(ctx).Model(&BookModel{})
	countQuery = applySearch(countQuery, params.Search)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 2. join聚合查询当前页
	query := r.db.WithContext(ctx).Model(&BookModel{}).
		Select("books.id, books.title, books.author, books.description, books.created_at, " +
			"COALESCE(AVG(reviews.rating), 0) AS average_rating, " +
			"COUNT(reviews.id) AS total_ratings").
		Joins("LEFT JOIN reviews ON reviews.book_id = books.id").
		Group("books.id")
	query = applySearch(query, params.Search)

	query = query.Order(sortClause(params.SortBy, params.SortOrder))

	offset := (params.Page - 1) * params.PerPage
	query = query.Limit(params.PerPage).Offset(offset)

	var rows []listRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	items := make([]*book.WithStats, len(rows))
	for i, row := range rows {
		items[i] = &book.WithStats{
			Book: book.Book{
				ID:          row.ID,
				Title:       row.Title,
				Author:      row.Author,
				Description: row.Description,
				CreatedAt:   row.CreatedAt,
			},
			Stats: book.Stats{
				AverageRating: row.AverageRating,
				TotalRatings:  row.TotalRatings,
			},
		}
	}

	return items, total, nil
}

// StatsByID 单本图书的评分统计
// 没有评论时AVG为NULL，COALESCE成0，满足{0, 0}零值契约
func (r *bookRepository) StatsByID(ctx context.Context, id uint) (*book.Stats, error) {
	var row struct {
		AverageRating float64
		TotalRatings  int64
	}

	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(id) AS total_ratings").
		Where("book_id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评分统计失败")
	}

	return &book.Stats{
		AverageRating: row.AverageRating,
		TotalRatings:  row.TotalRatings,
	}, nil
}

// applySearch 搜索条件：title/author/description任一命中即可
func applySearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	kw := "%" + search + "%"
	return query.Where("title LIKE ? OR author LIKE ? OR description LIKE ?", kw, kw, kw)
}

// sortClause 排序键解析
// rating → average_rating，popularity → total_ratings，其余 → books.title
// 方向只认desc，其余一律asc（与ListParams.Normalize的契约一致，
// 这里再兜一层避免拼接非法SQL）
func sortClause(sortBy, sortOrder string) string {
	var col string
	switch sortBy {
	case book.SortByRating:
		col = "average_rating"
	case book.SortByPopularity:
		col = "total_ratings"
	default:
		col = "books.title"
	}

	dir := "ASC"
	if sortOrder == book.OrderDesc {
		dir = "DESC"
	}

	return col + " " + dir
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}
}
