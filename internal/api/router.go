package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/unimag/portal/internal/api/handler"
	"github.com/unimag/portal/internal/api/middleware"
	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
	"github.com/unimag/portal/internal/core/service"
	mongorepo "github.com/unimag/portal/internal/infrastructure/db/mongo"
	redisrepo "github.com/unimag/portal/internal/infrastructure/db/redis"
	"github.com/unimag/portal/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	files ports.FileStore,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	submissionRepo := mongorepo.NewSubmissionRepository(db)
	commentRepo := mongorepo.NewCommentRepository(db)
	facultyRepo := mongorepo.NewFacultyRepository(db)
	settingsRepo := mongorepo.NewSettingsRepository(db)
	loginLimiter := redisrepo.NewLoginLimiter(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, facultyRepo, loginLimiter, activity, cfg.JWTSecret, 24*time.Hour, log)
	submissionService := service.NewSubmissionService(submissionRepo, commentRepo, userRepo, settingsRepo, files, activity, log)
	reviewService := service.NewReviewService(submissionRepo, commentRepo, activity, log)
	adminService := service.NewAdminService(userRepo, submissionRepo, commentRepo, facultyRepo, settingsRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	reviewHandler := handler.NewReviewHandler(reviewService, submissionService)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Public routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/faculties", adminHandler.ListFaculties)

	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Submissions (any authenticated role; row visibility is scoped per role) ---
	submissions := e.Group("/api/submissions", authMiddleware)
	submissions.GET("", submissionHandler.List)
	submissions.POST("", submissionHandler.Create, middleware.RBAC(domain.RoleStudent))
	submissions.GET("/:id", submissionHandler.Get)
	submissions.GET("/:id/file", submissionHandler.Download)

	// --- Coordinator review routes ---
	coordinator := e.Group("/api/coordinator", authMiddleware, middleware.RBAC(domain.RoleCoordinator))
	coordinator.GET("/submissions", reviewHandler.Worklist)
	coordinator.GET("/submissions/:id", reviewHandler.Get)
	coordinator.POST("/submissions/:id/comments", reviewHandler.AddComment)
	coordinator.PATCH("/submissions/:id/select", reviewHandler.Select)
	coordinator.PATCH("/submissions/:id/reject", reviewHandler.Reject)

	// --- Manager routes (selected submissions only, enforced by scope) ---
	manager := e.Group("/api/manager", authMiddleware, middleware.RBAC(domain.RoleManager))
	manager.GET("/submissions", submissionHandler.List)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboard/stats", adminHandler.DashboardStats)
	admin.GET("/faculties/stats", adminHandler.FacultyStats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/settings", adminHandler.GetSettings)
	admin.PUT("/settings", adminHandler.PutSettings)

	return e
}
