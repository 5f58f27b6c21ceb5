package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookreview/pkg/jwt"
)

// LoginUseCase 登录用例
// 设计说明：
// 1. 编排领域服务（凭证校验）与基础设施（JWT签发、Redis会话）
// 2. 登出与刷新也放在这个用例里，它们共享同一组依赖
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	refreshTTL   time.Duration
	accessTTL    time.Duration
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	accessTTL, refreshTTL time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// Execute 执行登录
// 业务流程：
// 1. 领域服务校验用户名+密码（用户不存在与密码错误返回同一个错误）
// 2. 签发Access/Refresh Token对
// 3. 保存会话到Redis，TTL与Refresh Token一致
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	// 会话写入失败不阻塞登录：Token本身已自包含鉴权信息
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"username": u.Username,
		"login_at": time.Now().Unix(),
	}
	_ = uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.refreshTTL)

	return &LoginResponse{
		UserID:       u.ID,
		Username:     u.Username,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// Logout 登出
// Access Token加入黑名单（TTL取Token剩余有效期的上界），并删除Redis会话
func (uc *LoginUseCase) Logout(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.accessTTL); err != nil {
		return err
	}
	return uc.sessionStore.DeleteSession(ctx, userID)
}

// Refresh 用Refresh Token换取新的Access Token
func (uc *LoginUseCase) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	accessToken, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}

	return &RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.accessTTL.Seconds()),
	}, nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
