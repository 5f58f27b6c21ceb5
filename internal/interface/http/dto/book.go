package dto

// CreateBookRequest 创建图书请求
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Author      string `json:"author" binding:"required,max=100"`
	Description string `json:"description"`
}

// ListBooksQuery 图书列表查询参数
// sort/order取值不在白名单内时不报错，回落到默认值（title/asc），
// 规范化在应用层完成
type ListBooksQuery struct {
	Search  string `form:"search"`
	Sort    string `form:"sort"`
	Order   string `form:"order"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
