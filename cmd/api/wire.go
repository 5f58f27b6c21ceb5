//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 使用方式：wire gen ./cmd/api 生成wire_gen.go后，
// main.go可改为调用InitializeApp()
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/bookreview/internal/application/book"
	appreview "github.com/xiebiao/bookreview/internal/application/review"
	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/jwt"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewReviewRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	review.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	providePagination,
	appuser.NewProfileUseCase,
	appuser.NewSearchUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appreview.NewSubmitReviewUseCase,
	appreview.NewListReviewsUseCase,
)

// middlewareSet 中间件与会话依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideListCache,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewReviewHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideListCache 从Redis客户端创建图书列表缓存
func provideListCache(client *goredis.Client) *redis.BookListCache {
	return redis.NewBookListCache(client)
}

// providePagination 从配置提取分页参数
func providePagination(cfg *config.Config) config.PaginationConfig {
	return cfg.Pagination
}

// provideLoginUseCase 登录用例需要从配置提取Token有效期
func provideLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	cfg *config.Config,
) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessionStore,
		cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

// provideGinEngine 创建Gin引擎并注册全部路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery(), middleware.CORS(cfg.CORS))

	registerRoutes(r, userHandler, bookHandler, reviewHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用
// wire gen会在wire_gen.go生成实际的依赖组装代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	return nil, nil
}
