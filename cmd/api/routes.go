package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/yourusername/todo-api/internal/auth"
	"github.com/yourusername/todo-api/internal/cache"
	"github.com/yourusername/todo-api/internal/config"
	"github.com/yourusername/todo-api/internal/handlers"
	"github.com/yourusername/todo-api/internal/password"
	"github.com/yourusername/todo-api/internal/repo"
	"github.com/yourusername/todo-api/internal/service"
	"github.com/yourusername/todo-api/internal/token"
)

// setupRoutes は認証まわりとTodo CRUDの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	codec := password.NewCodec(cfg.PasswordPepper, cfg.BcryptCost)
	tokens := token.NewManager(cfg.JWTSecret)

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, codec)
	authHandler := handlers.NewAuthHandler(userSvc, tokens)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	todoRepo := repo.NewPGTodoRepo(db)
	todoCache := cache.NewTodoCache(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	todoSvc := service.NewTodoService(todoRepo, todoCache)
	todoHandler := handlers.NewTodoHandler(todoSvc)

	// Todo系はすべて認可ゲートの内側
	todos := router.Group("/todos")
	todos.Use(auth.RequireAuth(tokens))
	{
		todos.POST("", todoHandler.Create)
		todos.GET("", todoHandler.List)
		todos.PUT("/:id", todoHandler.Update)
		todos.DELETE("/:id", todoHandler.Delete)
	}
}
