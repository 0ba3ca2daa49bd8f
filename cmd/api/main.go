package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	listingUseCase "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/listing"
	purchaseUseCase "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/purchase"
	userUseCase "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/user"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/payment/stripe"
	redisAdapter "github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/redis"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/token"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Database
	dbManager := database.NewManager(&cfg.Database, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Redis backs the rate limiter
	redisClient, err := redisAdapter.NewClient(&cfg.Redis, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to redis", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	// Repositories and unit of work
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	listingRepo := repository.NewListingRepository(dbManager.DB(), tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), tp, appLogger)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Resale policy from configuration
	policy := entity.ResalePolicy{
		ServiceFeeRate:     decimal.NewFromFloat(cfg.Marketplace.ServiceFeeRate),
		MinResaleLeadTime:  cfg.Marketplace.MinResaleLeadTime,
		PriceCapMultiplier: decimal.NewFromFloat(cfg.Marketplace.PriceCapMultiplier),
	}

	// Payment gateway
	gateway := stripe.NewClient(&cfg.Stripe, appLogger, tp)

	// Use cases
	listingService := listingUseCase.NewService(listingRepo, policy, tp, appLogger)
	purchaseService := purchaseUseCase.NewService(
		uow, listingRepo, transactionRepo, userRepo,
		gateway, policy, cfg.Marketplace.Currency, tp, appLogger,
	).WithGatewayTimeout(cfg.Stripe.RequestTimeout)
	userService := userUseCase.NewService(userRepo, listingRepo, transactionRepo, tp, appLogger)

	// Auth
	tokenManager, err := token.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	if err != nil {
		appLogger.Error("Failed to initialize token manager", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Observability and protection
	m := metrics.NewDefault()
	limiter := middleware.NewRateLimiter(redisClient, appLogger, m)

	// HTTP layer
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, m)
	routes.SetupRoutes(router, routes.Handlers{
		Auth:    handler.NewAuthHandler(userService, tokenManager, appLogger),
		User:    handler.NewUserHandler(userService, appLogger),
		Listing: handler.NewListingHandler(listingService, m, appLogger),
		Payment: handler.NewPaymentHandler(purchaseService, m, appLogger),
		Webhook: handler.NewWebhookHandler(gateway, purchaseService, m, appLogger),
		Config:  handler.NewConfigHandler(cfg.Stripe.PublishableKey, cfg.Marketplace.Currency, policy),
		Health:  handler.NewHealthHandler(dbManager.DB()),
	}, tokenManager, limiter, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

func logLevel(level string) coreport.LogLevel {
	switch level {
	case "debug":
		return coreport.LogLevelDebug
	case "warn":
		return coreport.LogLevelWarn
	case "error":
		return coreport.LogLevelError
	default:
		return coreport.LogLevelInfo
	}
}
