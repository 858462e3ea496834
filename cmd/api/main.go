package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/config"
	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/handler"
	"github.com/dafibh/cashflow/cashflow-backend/internal/middleware"
	"github.com/dafibh/cashflow/cashflow-backend/internal/repository/memory"
	"github.com/dafibh/cashflow/cashflow-backend/internal/repository/mongodb"
	"github.com/dafibh/cashflow/cashflow-backend/internal/repository/postgres"
	"github.com/dafibh/cashflow/cashflow-backend/internal/repository/storage"
	"github.com/dafibh/cashflow/cashflow-backend/internal/service"
	"github.com/dafibh/cashflow/cashflow-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs

// @title Cashflow API
// @version 1.0
// @description Personal finance transactions, categories and grouped totals.
// @BasePath /api/v1
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Open the record store
	repos, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open record store")
	}
	defer repos.close()

	// Initialize services
	transactionService := service.NewTransactionService(repos.transactions, repos.categories)
	reportService := service.NewReportService(repos.transactions, repos.categories)
	categoryService := service.NewCategoryService(repos.categories)

	// Icon storage is optional
	if cfg.S3.Enabled() {
		iconStore, err := storage.NewS3IconStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize icon storage")
		}
		categoryService.SetIconService(service.NewIconService(iconStore))
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Icon storage enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, icon uploads disabled")
	}

	// Change feed
	hub := websocket.NewHub()
	transactionService.SetEventPublisher(hub)
	categoryService.SetEventPublisher(hub)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(transactionService, reportService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "page", "per_page"},
		ExposeHeaders: []string{"X-Total-Count", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Register API routes
	handler.RegisterRoutes(e, transactionHandler, categoryHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// store bundles the repositories of the configured driver
type store struct {
	transactions domain.TransactionRepository
	categories   domain.CategoryRepository
	close        func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("Connected to database")
		return &store{
			transactions: postgres.NewTransactionRepository(pool),
			categories:   postgres.NewCategoryRepository(pool),
			close:        pool.Close,
		}, nil

	case config.StoreDriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")
		return &store{
			transactions: mongodb.NewTransactionRepository(db),
			categories:   mongodb.NewCategoryRepository(db),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
				}
			},
		}, nil

	case config.StoreDriverMemory:
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		return &store{
			transactions: memory.NewTransactionRepository(),
			categories:   memory.NewCategoryRepository(),
			close:        func() {},
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
