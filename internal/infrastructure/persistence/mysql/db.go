package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookreview/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate），生产环境应换用版本化迁移工具
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段和索引，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&ReviewModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Username和Email分别有命名唯一索引，Repository靠索引名
//    把Duplicate entry错误区分成"用户名已存在"/"邮箱已存在"
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex:uk_username;size:30;not null;comment:用户名"`
	Email     string    `gorm:"uniqueIndex:uk_email;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明：
// 1. 评分统计永远不落在这张表上，全部从reviews实时派生
// 2. Title/Author加搜索索引；标题+作者不做唯一约束
type BookModel struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author      string    `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Description string    `gorm:"type:text;comment:图书描述"`
	CreatedAt   time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ReviewModel GORM评论模型
// 设计说明：
// 1. uk_user_book联合唯一索引：一个用户对一本书只能评论一次，
//    这是admission逻辑进程内锁之外的存储层兜底
// 2. book_id单独加索引，支撑图书评论列表和统计聚合
// 3. created_at加索引，列表固定按它倒序
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:uk_user_book;not null;comment:评论用户ID"`
	BookID    uint      `gorm:"uniqueIndex:uk_user_book;index;not null;comment:图书ID"`
	Text      string    `gorm:"type:text;not null;comment:评论内容"`
	Rating    int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}
