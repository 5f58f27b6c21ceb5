package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/response"
)

// UserHandler 用户HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
// 3. 使用依赖注入，便于测试
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	profileUseCase  *appuser.ProfileUseCase
	searchUseCase   *appuser.SearchUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	profileUseCase *appuser.ProfileUseCase,
	searchUseCase *appuser.SearchUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		profileUseCase:  profileUseCase,
		searchUseCase:   searchUseCase,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "注册成功", result)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Refresh 刷新Access Token
// POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	result, err := h.loginUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout 用户登出
// POST /api/v1/auth/logout（需登录）
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	token := middleware.GetAccessToken(c)

	if err := h.loginUseCase.Logout(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Profile 本人主页（含邮箱和自己的评论分页）
// GET /api/v1/users/profile（需登录）
func (h *UserHandler) Profile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	result, err := h.profileUseCase.Execute(c.Request.Context(), userID, query.Page, query.PerPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PublicProfile 公开主页（不含邮箱）
// GET /api/v1/users/:id
func (h *UserHandler) PublicProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	result, err := h.profileUseCase.ExecutePublic(c.Request.Context(), userID, query.Page, query.PerPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Search 用户名模糊搜索
// GET /api/v1/users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	var query dto.SearchUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, "参数错误", err.Error())
		return
	}

	items, err := h.searchUseCase.Execute(c.Request.Context(), query.Q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}
