// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"uplift/internal/cache"
	"uplift/internal/config"
	"uplift/internal/database"
	"uplift/internal/middleware"
	"uplift/internal/models"
	"uplift/internal/repository"
	"uplift/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AuthHeader carries the opaque session token on authenticated requests.
const AuthHeader = "X-Authorization"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	validate       *validator.Validate
	images         *storage.ImageStore
	userRepo       repository.UserRepository
	categoryRepo   repository.CategoryRepository
	petitionRepo   repository.PetitionRepository
	tierRepo       repository.SupportTierRepository
	supporterRepo  repository.SupporterRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	images, err := storage.NewImageStore(cfg.ImageDir)
	if err != nil {
		return nil, fmt.Errorf("image store initialization failed: %w", err)
	}

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("uplift-api"),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		images:         images,
		userRepo:       repository.NewUserRepository(db),
		categoryRepo:   repository.NewCategoryRepository(db),
		petitionRepo:   repository.NewPetitionRepository(db),
		tierRepo:       repository.NewSupportTierRepository(db),
		supporterRepo:  repository.NewSupporterRepository(db),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// OpenTelemetry span per request; must run before the context middleware
	// so the trace ID is available to the structured logger.
	app.Use(middleware.TracingMiddleware())

	// Context middleware to propagate request ID, user ID and trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Authorization",
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
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// User routes
	users := app.Group("/users")
	users.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Post("/logout", s.AuthRequired(), s.Logout)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	users.Get("/:id/image", s.GetUserImage)
	users.Put("/:id/image", s.AuthRequired(), s.SetUserImage)
	users.Post("/:id/image", s.AuthRequired(), s.SetUserImage)
	users.Delete("/:id/image", s.AuthRequired(), s.DeleteUserImage)
	users.Get("/:id", s.GetUser)
	users.Patch("/:id", s.AuthRequired(), s.UpdateUser)

	// Petition routes
	petitions := app.Group("/petitions")
	// /categories must come before the generic /:id route
	petitions.Get("/categories", s.GetCategories)
	petitions.Get("/", s.GetPetitions)
	petitions.Post("/", s.AuthRequired(), s.CreatePetition)
	petitions.Get("/:id/image", s.GetPetitionImage)
	petitions.Put("/:id/image", s.AuthRequired(), s.SetPetitionImage)
	petitions.Post("/:id/image", s.AuthRequired(), s.SetPetitionImage)
	petitions.Delete("/:id/image", s.AuthRequired(), s.DeletePetitionImage)
	petitions.Post("/:id/supportTiers", s.AuthRequired(), s.AddSupportTier)
	petitions.Patch("/:id/supportTiers/:tierId", s.AuthRequired(), s.EditSupportTier)
	petitions.Delete("/:id/supportTiers/:tierId", s.AuthRequired(), s.DeleteSupportTier)
	petitions.Get("/:id/supporters", s.GetSupporters)
	petitions.Post("/:id/supporters", s.AuthRequired(), s.AddSupporter)
	petitions.Get("/:id", s.GetPetition)
	petitions.Patch("/:id", s.AuthRequired(), s.EditPetition)
	petitions.Delete("/:id", s.AuthRequired(), s.DeletePetition)
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

	// Redis is an optional dependency; report it but do not fail readiness.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It resolves the
// X-Authorization token against the stored session token; authentication is
// always checked before any ownership or business-rule validation.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Get(AuthHeader))
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		user, err := s.userRepo.GetByToken(c.Context(), token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Store user ID in context
		c.Locals("userID", user.ID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID attempts to resolve the X-Authorization token but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	token := strings.TrimSpace(c.Get(AuthHeader))
	if token == "" {
		return 0, false
	}
	user, err := s.userRepo.GetByToken(c.Context(), token)
	if err != nil || user == nil {
		return 0, false
	}
	return user.ID, true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Uplift API",
		BodyLimit: 10 * 1024 * 1024, // image uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
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
