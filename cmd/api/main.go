package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

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
	"github.com/xiebiao/bookreview/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入，组装链：Repository ← Service ← UseCase ← Handler
// （wire.go提供等价的Wire注入器，wire gen后可切换）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 依赖注入（手动组装）

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	sessionStore := redis.NewSessionStore(redisClient)
	listCache := redis.NewBookListCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	reviewService := review.NewService(reviewRepo, bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore,
		cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
	profileUseCase := appuser.NewProfileUseCase(userService, reviewService, cfg.Pagination)
	searchUseCase := appuser.NewSearchUseCase(userService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService, listCache, cfg.Pagination)
	createBookUseCase := appbook.NewCreateBookUseCase(bookService, listCache)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	submitReviewUseCase := appreview.NewSubmitReviewUseCase(reviewService, listCache)
	listReviewsUseCase := appreview.NewListReviewsUseCase(reviewService, cfg.Pagination)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, profileUseCase, searchUseCase)
	bookHandler := handler.NewBookHandler(listBooksUseCase, createBookUseCase, getBookUseCase)
	reviewHandler := handler.NewReviewHandler(submitReviewUseCase, listReviewsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 5. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery(), middleware.CORS(cfg.CORS))

	// 6. 注册路由
	registerRoutes(r, userHandler, bookHandler, reviewHandler, authMiddleware)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   用户注册: POST http://localhost%s/api/v1/auth/register\n", addr)
	fmt.Printf("   图书列表: GET  http://localhost%s/api/v1/books\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	v1 := r.Group("/api/v1")
	{
		// 认证模块
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.Refresh)
			auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块（浏览公开，创建需登录）
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.POST("", authMiddleware.RequireAuth(), bookHandler.Create)
			books.GET("/:id", bookHandler.Get)
			books.GET("/:id/reviews", reviewHandler.ListByBook)
			books.POST("/:id/reviews", authMiddleware.RequireAuth(), reviewHandler.Submit)
		}

		// 用户模块
		// 注意路由顺序：/search与/profile必须注册在/:id之前
		users := v1.Group("/users")
		{
			users.GET("/search", userHandler.Search)
			users.GET("/profile", authMiddleware.RequireAuth(), userHandler.Profile)
			users.GET("/:id", userHandler.PublicProfile)
		}
	}
}
