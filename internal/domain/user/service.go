package user

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 用户名与密码的业务边界
const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 6
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, username, email, password string) (*User, error)

	// Login 用户登录（按用户名查找并校验密码）
	Login(ctx context.Context, username, password string) (*User, error)

	// GetByID 根据ID查询用户
	GetByID(ctx context.Context, id uint) (*User, error)

	// Search 用户名模糊搜索，最多返回limit条
	Search(ctx context.Context, keyword string, limit int) ([]*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则：
// 1. 用户名3-30个字符，只允许字母、数字、下划线
// 2. 邮箱格式校验
// 3. 密码至少6位
// 4. 用户名/邮箱唯一性由数据库UNIQUE索引保证，Repository负责转换为业务错误
func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if !isValidUsername(username) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams,
			"用户名应为3-30个字符，只允许字母、数字、下划线")
	}

	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	if len(password) < PasswordMinLength {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "密码至少6位")
	}

	// bcrypt自动加盐，cost=12平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(username, email, string(hashedPassword))

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// Login 用户登录
// 用户不存在与密码错误统一返回ErrInvalidPassword，避免用户名枚举
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.GetAppError(err).Code == apperrors.ErrCodeUserNotFound {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}

	return u, nil
}

// GetByID 根据ID查询用户
func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Search 用户名模糊搜索
// 空关键词直接返回空结果，不查库
func (s *service) Search(ctx context.Context, keyword string, limit int) ([]*User, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}
	return s.repo.SearchByUsername(ctx, keyword, limit)
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// isValidUsername 用户名校验
func isValidUsername(username string) bool {
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return false
	}
	return usernameRe.MatchString(username)
}

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
