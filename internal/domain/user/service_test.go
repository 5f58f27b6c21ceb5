package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

type mockUserRepo struct {
	createFn           func(ctx context.Context, u *User) error
	findByIDFn         func(ctx context.Context, id uint) (*User, error)
	findByUsernameFn   func(ctx context.Context, username string) (*User, error)
	searchByUsernameFn func(ctx context.Context, keyword string, limit int) ([]*User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *User) error { return m.createFn(ctx, u) }

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	return m.findByUsernameFn(ctx, username)
}

func (m *mockUserRepo) SearchByUsername(ctx context.Context, keyword string, limit int) ([]*User, error) {
	return m.searchByUsernameFn(ctx, keyword, limit)
}

// TestService_Register_Validation 注册参数校验
func TestService_Register_Validation(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *User) error {
			t.Fatal("校验失败不应产生写入")
			return nil
		},
	}
	svc := NewService(repo)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"用户名过短", "ab", "a@example.com", "secret1"},
		{"用户名过长", "a123456789012345678901234567890", "a@example.com", "secret1"},
		{"用户名含非法字符", "book lover", "a@example.com", "secret1"},
		{"用户名含中划线", "book-lover", "a@example.com", "secret1"},
		{"邮箱缺少@", "booklover", "not-an-email", "secret1"},
		{"邮箱缺少域名", "booklover", "a@", "secret1"},
		{"密码过短", "booklover", "a@example.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
		})
	}
}

// TestService_Register_Success 注册成功：密码以bcrypt散列存储
func TestService_Register_Success(t *testing.T) {
	var created *User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *User) error {
			u.ID = 1
			created = u
			return nil
		},
	}
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), "book_lover", "reader@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, uint(1), u.ID)
	assert.Equal(t, "book_lover", u.Username)
	assert.NotEqual(t, "secret123", created.Password, "不允许存明文密码")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
}

// TestService_Register_DuplicateUsername 用户名冲突原样透出仓储错误
func TestService_Register_DuplicateUsername(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *User) error {
			return apperrors.ErrUsernameDuplicate
		},
	}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "book_lover", "reader@example.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrUsernameDuplicate)
}

// TestService_Login 登录校验
// 用户不存在与密码错误必须返回同一个错误（防用户名枚举）
func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			if username == "book_lover" {
				return &User{ID: 1, Username: "book_lover", Password: string(hash)}, nil
			}
			return nil, apperrors.ErrUserNotFound
		},
	}
	svc := NewService(repo)

	t.Run("正确凭证", func(t *testing.T) {
		u, err := svc.Login(context.Background(), "book_lover", "secret123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "book_lover", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在时返回同样的错误", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody", "secret123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})
}

// TestService_Search 用户搜索
func TestService_Search(t *testing.T) {
	repo := &mockUserRepo{
		searchByUsernameFn: func(ctx context.Context, keyword string, limit int) ([]*User, error) {
			assert.Equal(t, "book", keyword)
			assert.Equal(t, 10, limit)
			return []*User{{ID: 1, Username: "book_lover"}}, nil
		},
	}
	svc := NewService(repo)

	t.Run("空关键词不查库", func(t *testing.T) {
		users, err := svc.Search(context.Background(), "   ", 10)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("关键词去除首尾空白", func(t *testing.T) {
		users, err := svc.Search(context.Background(), " book ", 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "book_lover", users[0].Username)
	})
}
