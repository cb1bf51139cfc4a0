package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ostrich-systems/field-service-api/internal/api/handler"
	"github.com/ostrich-systems/field-service-api/internal/api/middleware"
	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
	"github.com/ostrich-systems/field-service-api/internal/core/service"
	"github.com/ostrich-systems/field-service-api/internal/infrastructure/config"
	mongodb "github.com/ostrich-systems/field-service-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ostrich-systems/field-service-api/internal/infrastructure/db/redis"
	"github.com/ostrich-systems/field-service-api/internal/infrastructure/http/handlers"
	"github.com/ostrich-systems/field-service-api/internal/infrastructure/sms"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, publisher ports.NotificationPublisher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fieldservice"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	otpRepo := mongodb.NewOTPRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)

	// --- Services ---
	throttle := redisdb.NewOTPThrottle(rdb, time.Minute)
	smsSender := sms.NewLogSender(log)
	authService := service.NewAuthService(userRepo, otpRepo, throttle, smsSender, cfg.JWTSecret, 24*time.Hour, cfg.Env, log)
	ticketService := service.NewTicketService(ticketRepo, customerRepo, userRepo, publisher, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	dashboardService := service.NewDashboardService(ticketRepo, customerRepo, userRepo)
	profileService := service.NewProfileService(userRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	profileHandler := handler.NewProfileHandler(profileService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Public auth routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/send-otp", authHandler.SendOTP)
	v1.POST("/auth/verify-otp", authHandler.VerifyOTP)

	// --- Technician surface ---
	tech := v1.Group("", middleware.Auth(authService), middleware.RBAC(domain.RoleServiceStaff))

	tech.GET("/tickets/assigned", ticketHandler.ListAssigned)
	tech.GET("/tickets/completed", ticketHandler.ListCompleted)
	tech.GET("/tickets/:id", ticketHandler.Get)
	tech.PUT("/tickets/:id/status", ticketHandler.UpdateStatus)
	tech.POST("/tickets/:id/location", ticketHandler.CaptureLocation)
	tech.POST("/tickets/:id/photos", ticketHandler.AttachPhotos)
	tech.POST("/tickets/:id/signature", ticketHandler.AttachSignature)

	tech.GET("/notifications", notificationHandler.List)
	tech.PUT("/notifications/mark-all-read", notificationHandler.MarkAllRead)
	tech.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	tech.PUT("/notifications/:id/read", notificationHandler.MarkRead)

	tech.GET("/dashboard/overview", dashboardHandler.Overview)

	tech.GET("/profile", profileHandler.Get)
	tech.PUT("/profile", profileHandler.Update)

	tech.GET("/schedule", ticketHandler.Schedule)

	tech.GET("/inventory", inventoryHandler.List)
	tech.POST("/inventory/request", inventoryHandler.Request)

	return e
}
