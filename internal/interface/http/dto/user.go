package dto

// RegisterRequest HTTP层注册请求
// 说明：binding tag只做格式层面的校验，业务规则（用户名字符集、
// 唯一性）由领域服务和数据库约束把关
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// PageQuery 通用分页查询参数
type PageQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// SearchUsersQuery 用户搜索查询参数
type SearchUsersQuery struct {
	Q string `form:"q"`
}
