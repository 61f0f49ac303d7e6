// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"trenai/internal/appstate"
	"trenai/internal/cache"
	"trenai/internal/config"
	"trenai/internal/database"
	"trenai/internal/featureflags"
	"trenai/internal/generator"
	"trenai/internal/middleware"
	"trenai/internal/models"
	"trenai/internal/notifications"
	"trenai/internal/repository"
	"trenai/internal/service"
	"trenai/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	userRepo       repository.UserRepository
	contentRepo    repository.ContentRepository
	analysisRepo   repository.AnalysisRepository
	authService    *service.AuthService
	userService    *service.UserService
	sessions       *session.Manager
	states         *appstate.Manager
	gen            generator.Generator
	analyzer       generator.Analyzer
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	featureFlags   *featureflags.Manager
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	prom := middleware.InitMetrics("trenai-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		contentRepo:    contentRepo,
		analysisRepo:   analysisRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	server.authService = service.NewAuthService(userRepo)
	server.userService = service.NewUserService(userRepo)
	server.sessions = session.NewManager(cfg.JWTSecret, cfg.SessionDuration())
	server.gen = generator.NewMock(cfg.GeneratorDelay())
	server.analyzer = generator.NewMockAnalyzer(cfg.GeneratorDelay())

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub()
	}

	snapshots := appstate.NewSnapshotStore(redisClient)
	server.states = appstate.NewManager(snapshots, cfg.NotificationTTL(), server.onToastEvent)

	middleware.InitAuth(server.sessions)

	return server, nil
}

// onToastEvent is the store-side sink for queue changes: it keeps the active
// gauge honest and fans the event out to connected dashboards.
func (s *Server) onToastEvent(ev appstate.ToastEvent) {
	switch ev.Type {
	case appstate.EventEnqueued:
		middleware.ActiveNotifications.Inc()
	case appstate.EventRemoved:
		middleware.ActiveNotifications.Dec()
	}

	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.notifier.PublishEvent(ctx, ev); err != nil {
		log.Printf("failed to publish toast event for user %d: %v", ev.UserID, err)
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Trenai Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	// Public vocabularies for onboarding and filtering
	api.Get("/trends/categories", s.GetCategories)
	api.Get("/trends/platforms", s.GetPlatforms)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// Trend routes
	trendRoutes := protected.Group("/trends")
	trendRoutes.Get("/", s.GetTrends)
	trendRoutes.Post("/filter", s.ApplyTrendFilter)
	trendRoutes.Get("/bookmarks", s.GetBookmarks)
	trendRoutes.Post("/:id/bookmark", s.ToggleBookmark)

	// Content routes
	content := protected.Group("/content")
	content.Post("/generate", middleware.RateLimit(
		s.redis, 10, time.Minute, "generate"), s.GenerateContent)
	content.Get("/history", s.GetContentHistory)

	// Analysis routes
	analyses := protected.Group("/analyses")
	analyses.Post("/", middleware.RateLimit(
		s.redis, 5, time.Minute, "analyze"), s.AnalyzeProfile)
	analyses.Get("/", s.GetAnalyses)

	// Notification routes
	notificationRoutes := protected.Group("/notifications")
	notificationRoutes.Get("/", s.GetNotifications)
	notificationRoutes.Post("/", s.EnqueueNotification)
	notificationRoutes.Delete("/:id", s.DismissNotification)

	// Session state hydration for dashboard boot
	protected.Get("/state", s.GetState)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me/settings", s.UpdateSettings)
	users.Post("/me/onboarding", s.CompleteOnboarding)

	// Feature flags evaluated for the current user
	protected.Get("/feature-flags", s.GetFeatureFlags)

	// Websocket toast feed
	ws := api.Group("/ws", middleware.WebSocketAuthRequired)
	ws.Get("/", s.WebsocketHandler())
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades without Redis (no snapshots, no toast pushes)
		// but stays serviceable.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// currentUserID reads the authenticated user from locals. Only valid behind
// AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// store fetches the caller's hydrated state store.
func (s *Server) store(c *fiber.Ctx) (*appstate.Store, error) {
	return s.states.Get(c.Context(), currentUserID(c))
}

// persistState saves the caller's snapshot, logging rather than failing the
// request when Redis is unavailable.
func (s *Server) persistState(c *fiber.Ctx) {
	userID := currentUserID(c)
	if err := s.states.Persist(c.Context(), userID); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(),
			"failed to persist state", "user_id", userID, "error", err)
	}
}

// statusForError maps the application error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case models.HasCode(err, models.CodeValidation):
		return fiber.StatusBadRequest
	case models.HasCode(err, models.CodeConflict):
		return fiber.StatusConflict
	case models.HasCode(err, models.CodeUnauthorized):
		return fiber.StatusUnauthorized
	case models.HasCode(err, models.CodeNotFound):
		return fiber.StatusNotFound
	case models.HasCode(err, models.CodeExternalService):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Trenai API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Wire the toast hub to Redis pub/sub if available
	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				log.Printf("failed to start %s wiring: %v", s.hub.Name(), err)
			}
		}()
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", s.hub.Name(), err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
