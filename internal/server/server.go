// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aurex/internal/ai"
	"aurex/internal/cache"
	"aurex/internal/config"
	"aurex/internal/database"
	"aurex/internal/middleware"
	"aurex/internal/models"
	"aurex/internal/notify"
	"aurex/internal/repository"
	"aurex/internal/service"
	"aurex/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	userRepo repository.UserRepository

	planSvc      *service.PlanService
	milestoneSvc *service.MilestoneService
	skillSvc     *service.SkillService
	shareSvc     *service.ShareService
	documentSvc  *service.DocumentService
	notifySvc    *service.NotificationService
}

// Deps carries the external collaborators a Server needs. Tests substitute
// fakes here; production wiring comes from NewServer.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Generator ai.Generator
	Store     storage.Client
	Sender    notify.Sender
}

// NewServer creates a server with production collaborators.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	deps := Deps{
		DB:        db,
		Redis:     redisClient,
		Generator: ai.NewClient(cfg),
		Store:     storage.NewHTTPClient(cfg.StorageEndpoint, cfg.StorageToken),
		Sender:    notify.NewNotifier(cfg.NotifyWebhookURL, redisClient),
	}
	return NewServerWithDeps(cfg, deps), nil
}

// NewServerWithDeps wires repositories and services around the given
// collaborators.
func NewServerWithDeps(cfg *config.Config, deps Deps) *Server {
	userRepo := repository.NewUserRepository(deps.DB)
	planRepo := repository.NewPlanRepository(deps.DB)
	milestoneRepo := repository.NewMilestoneRepository(deps.DB)
	skillRepo := repository.NewSkillRepository(deps.DB)
	shareRepo := repository.NewShareRepository(deps.DB)
	documentRepo := repository.NewDocumentRepository(deps.DB)
	notificationRepo := repository.NewNotificationRepository(deps.DB)

	return &Server{
		config:       cfg,
		db:           deps.DB,
		redis:        deps.Redis,
		userRepo:     userRepo,
		planSvc:      service.NewPlanService(planRepo, skillRepo, deps.Generator),
		milestoneSvc: service.NewMilestoneService(milestoneRepo, planRepo),
		skillSvc:     service.NewSkillService(skillRepo, planRepo),
		shareSvc:     service.NewShareService(shareRepo, planRepo),
		documentSvc:  service.NewDocumentService(documentRepo, deps.Store),
		notifySvc:    service.NewNotificationService(notificationRepo, planRepo, milestoneRepo, userRepo, deps.Sender),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	prom := middleware.InitMetrics("aurex")
	prom.RegisterAt(app, "/metrics")
	app.Use(middleware.MetricsMiddleware(prom))

	s.registerRoutes(app)
}

// registerRoutes wires the health and API endpoints. Kept separate from
// SetupRoutes so tests can build an app without touching the global
// Prometheus registry.
func (s *Server) registerRoutes(app *fiber.App) {
	// Health probes live outside /api so infrastructure checks do not go
	// through auth or rate limiting groups.
	app.Get("/health/live", s.Liveness)
	app.Get("/health/ready", s.Readiness)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public share resolution by token
	api.Get("/shared/:token", s.ResolveSharedPlan)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	protectedAuth := protected.Group("/auth")
	protectedAuth.Post("/logout", s.Logout)
	protectedAuth.Get("/me", s.GetMe)
	protectedAuth.Put("/me/theme", s.UpdateTheme)

	// Plan routes
	plans := protected.Group("/plans")
	plans.Post("/", middleware.RateLimit(s.redis, 5, 5*time.Minute, "create_plan"), s.CreatePlan)
	plans.Get("/", s.ListPlans)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	plans.Patch("/:id/status", s.UpdatePlanStatus)
	plans.Patch("/:id/progress", s.UpdatePlanProgress)
	plans.Get("/:id/versions", s.ListPlanVersions)

	plans.Get("/:id/milestones", s.ListMilestones)
	plans.Post("/:id/milestones", s.CreateMilestone)
	plans.Patch("/:id/milestones/:milestoneId/status", s.UpdateMilestoneStatus)
	plans.Delete("/:id/milestones/:milestoneId", s.DeleteMilestone)

	plans.Get("/:id/skills", s.ListSkills)
	plans.Post("/:id/skills", s.AddSkill)
	plans.Patch("/:id/skills/:skillId/completion", s.UpdateSkillCompletion)
	plans.Delete("/:id/skills/:skillId", s.DeleteSkill)

	plans.Post("/:id/shares", s.CreateShare)
	plans.Get("/:id/shares", s.ListShares)
	plans.Delete("/:id/shares/:shareId", s.RevokeShare)

	// Generic /:id routes must be last
	plans.Get("/:id", s.GetPlan)
	plans.Delete("/:id", s.DeletePlan)

	// Document routes
	documents := protected.Group("/documents")
	documents.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "upload_document"), s.UploadDocument)
	documents.Get("/", s.ListDocuments)
	documents.Get("/:id/download-url", s.GetDownloadURL)
	documents.Delete("/:id", s.DeleteDocument)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.Post("/milestone-reminder", middleware.RateLimit(s.redis, 10, time.Minute, "notify"), s.SendMilestoneReminder)
	notifications.Post("/resource-suggestions", middleware.RateLimit(s.redis, 10, time.Minute, "notify"), s.SendResourceSuggestions)
	notifications.Post("/progress-checkin", middleware.RateLimit(s.redis, 10, time.Minute, "notify"), s.SendProgressCheckIn)
	notifications.Get("/preferences", s.GetNotificationPreferences)
	notifications.Put("/preferences", s.UpdateNotificationPreferences)
	notifications.Get("/", s.ListNotifications)
}

// Liveness handles GET /health/live
func (s *Server) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Readiness handles GET /health/ready
func (s *Server) Readiness(c *fiber.Ctx) error {
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
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ready",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Tokens revoked by logout are rejected until they expire naturally.
		if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
			revoked, rerr := s.redis.Exists(c.Context(), blacklistKey(jti)).Result()
			if rerr == nil && revoked > 0 {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		c.Locals("userID", uint(userID))
		c.Locals("jwtClaims", claims)

		return c.Next()
	}
}

// NewApp builds the Fiber app with middleware and routes configured.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Aurex Career API",
		BodyLimit: 16 * 1024 * 1024, // base64 document payloads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Shutdown releases server resources
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Warn("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Warn("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
