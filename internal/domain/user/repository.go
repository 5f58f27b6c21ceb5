package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 这样domain层不依赖任何外部框架（GORM、sqlx等）
// 4. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户
	// 用户名或邮箱已存在时，返回errors.ErrUsernameDuplicate / ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户（登录用，精确匹配、区分大小写）
	// 如果不存在，返回errors.ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// SearchByUsername 用户名模糊搜索（不区分大小写的子串匹配）
	// 最多返回limit条
	SearchByUsername(ctx context.Context, keyword string, limit int) ([]*User, error)
}
