package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/user"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如用户名/邮箱重复），转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT），
// 按命中的索引名区分用户名重复和邮箱重复
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateOnKey(err, "uk_username") {
			return apperrors.ErrUsernameDuplicate
		}
		if isDuplicateOnKey(err, "uk_email") {
			return apperrors.ErrEmailDuplicate
		}
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "用户名或邮箱已被注册")
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	// 回填自增ID（GORM自动填充）
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt

	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// FindByUsername 根据用户名查找用户
// username字段默认collation不区分大小写，这里用BINARY强制精确匹配
// （用户名唯一性按区分大小写的语义约定）
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("BINARY username = ?", username).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// SearchByUsername 用户名模糊搜索
// utf8mb4默认collation对LIKE不区分大小写，正好符合搜索语义
func (r *userRepository) SearchByUsername(ctx context.Context, keyword string, limit int) ([]*user.User, error) {
	var models []UserModel
	kw := "%" + keyword + "%"

	err := r.db.WithContext(ctx).
		Where("username LIKE ?", kw).
		Order("username ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索用户失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}

	return users, nil
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		Password:  model.Password,
		CreatedAt: model.CreatedAt,
	}
}
