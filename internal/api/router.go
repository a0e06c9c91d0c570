package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/companyhq/company-api/internal/api/handler"
	"github.com/companyhq/company-api/internal/api/middleware"
	"github.com/companyhq/company-api/internal/core/domain"
	"github.com/companyhq/company-api/internal/core/password"
	"github.com/companyhq/company-api/internal/core/ports"
	"github.com/companyhq/company-api/internal/core/service"
	"github.com/companyhq/company-api/internal/core/token"
	"github.com/companyhq/company-api/internal/infrastructure/config"
	mongodb "github.com/companyhq/company-api/internal/infrastructure/db/mongo"
	redisdb "github.com/companyhq/company-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit recorder is constructed by the caller because its worker pool
// lifecycle (Start/Wait) belongs to main, not to route registration.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("company"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokens := token.New(token.Config{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	apiLimiter := redisdb.NewFixedWindowLimiter(rdb, "api", cfg.Rate.APILimit, cfg.Rate.APIWindow)
	loginLimiter := redisdb.NewFixedWindowLimiter(rdb, "login", cfg.Rate.LoginLimit, cfg.Rate.LoginWindow)

	authService := service.NewAuthService(userRepo, tokens, hasher, audit, log)
	userService := service.NewUserService(userRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	authenticate := middleware.Authenticate(tokens, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- API routes (all behind the general per-address limiter) ---
	apiGroup := e.Group("/api", middleware.RateLimit(apiLimiter, log))

	auth := apiGroup.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimit(loginLimiter, log))
	auth.POST("/refresh", authHandler.Refresh)

	// --- User routes (additionally behind the authentication gate) ---
	users := apiGroup.Group("/users", authenticate)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/profile", userHandler.Profile)
	users.GET("/:id", userHandler.GetByID, adminOnly)
	users.PATCH("/:id/status", userHandler.UpdateStatus, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
