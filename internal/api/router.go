package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskdesk/task-system/docs"
	"github.com/taskdesk/task-system/internal/api/handler"
	"github.com/taskdesk/task-system/internal/api/middleware"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/service"
	mongostore "github.com/taskdesk/task-system/internal/infrastructure/db/mongo"
	redisstore "github.com/taskdesk/task-system/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs. All handles are constructed
// in main and passed explicitly; the router owns no global state.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Notify    service.NotificationEnqueuer
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskdesk"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(deps.Mongo)
	taskRepo := mongostore.NewTaskRepository(deps.Mongo)
	denylist := redisstore.NewTokenDenylist(deps.Redis)

	authService := service.NewAuthService(userRepo, denylist, deps.Notify, deps.JWTSecret, deps.TokenTTL, deps.Logger)
	approvalService := service.NewApprovalService(userRepo, deps.Notify, deps.Logger)
	taskService := service.NewTaskService(taskRepo, userRepo, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(approvalService)
	taskHandler := handler.NewTaskHandler(taskService)

	authMiddleware := middleware.Auth(deps.JWTSecret, denylist)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Admin approval registry (admin role only) ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/pending", adminHandler.Pending)
	admin.POST("/approve", adminHandler.Approve)

	// --- Task resource ---
	tasks := e.Group("/v1/tasks", authMiddleware)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
