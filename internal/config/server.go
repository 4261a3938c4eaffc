package config

import (
	"SmartBudget/database"
	analyticsHandler "SmartBudget/internal/api/analytics/handler"
	analyticsService "SmartBudget/internal/api/analytics/service"
	authHandler "SmartBudget/internal/api/auth/handler"
	authRepository "SmartBudget/internal/api/auth/repository"
	authService "SmartBudget/internal/api/auth/service"
	budgetHandler "SmartBudget/internal/api/budget/handler"
	budgetRepository "SmartBudget/internal/api/budget/repository"
	budgetService "SmartBudget/internal/api/budget/service"
	categoryHandler "SmartBudget/internal/api/category/handler"
	categoryRepository "SmartBudget/internal/api/category/repository"
	categoryService "SmartBudget/internal/api/category/service"
	expenseHandler "SmartBudget/internal/api/expense/handler"
	expenseRepository "SmartBudget/internal/api/expense/repository"
	expenseService "SmartBudget/internal/api/expense/service"
	incomeHandler "SmartBudget/internal/api/income/handler"
	incomeRepository "SmartBudget/internal/api/income/repository"
	incomeService "SmartBudget/internal/api/income/service"
	"SmartBudget/internal/middleware"
	"SmartBudget/pkg/bcrypt"
	"SmartBudget/pkg/redis"
	"SmartBudget/pkg/s3"
	"SmartBudget/pkg/utils"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	s3Client    s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := database.Open()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

// WithRedisServer enables token revocation. A nil server leaves logout unavailable.
func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.redisServer)
		return nil
	}
}

// WithS3Client enables receipt storage. Missing bucket configuration is not fatal.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Receipt storage disabled: %v", err)
			}
			return nil
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.redisServer, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Categories
	categoryRepo := categoryRepository.New(s.db, s.log)
	categoryServices := categoryService.New(s.log, categoryRepo, s.utils)
	categoryHandlers := categoryHandler.New(s.log, s.validator, s.middleware, categoryServices)

	// Transactions
	expenseRepo := expenseRepository.New(s.db, s.log)
	expenseServices := expenseService.New(s.log, expenseRepo, s.s3Client, s.utils)
	expenseHandlers := expenseHandler.New(s.log, s.validator, s.middleware, expenseServices)

	incomeRepo := incomeRepository.New(s.db, s.log)
	incomeServices := incomeService.New(s.log, incomeRepo, s.utils)
	incomeHandlers := incomeHandler.New(s.log, s.validator, s.middleware, incomeServices)

	// Budgets
	budgetRepo := budgetRepository.New(s.db, s.log)
	budgetServices := budgetService.New(s.log, budgetRepo, s.utils)
	budgetHandlers := budgetHandler.New(s.log, s.validator, s.middleware, budgetServices)

	// Analytics
	analyticsServices := analyticsService.New(s.log, expenseRepo, incomeRepo, budgetRepo, categoryRepo)
	analyticsHandlers := analyticsHandler.New(s.log, s.validator, s.middleware, analyticsServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers,
		authHandlers,
		categoryHandlers,
		expenseHandlers,
		incomeHandlers,
		budgetHandlers,
		analyticsHandlers,
	)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	router := s.engine.Group("/api/v1", s.middleware.NewRateLimiter)

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests and closes the database.
func (s *Server) Shutdown() error {
	if err := s.engine.Shutdown(); err != nil {
		return err
	}
	return s.db.Close()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
