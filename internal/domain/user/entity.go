package user

import (
	"time"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. Username和Email分别全局唯一（区分大小写），由数据库唯一索引保证
// 2. 密码已加密存储（bcrypt），不提供任何暴露明文的方法
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
// 4. 用户只创建不更新不删除，实体上没有修改行为
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // bcrypt哈希值
	CreatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, email, hashedPassword string) *User {
	return &User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}
}
