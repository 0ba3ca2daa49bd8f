package routes

import (
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/token"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything SetupRoutes wires up
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Listing *handler.ListingHandler
	Payment *handler.PaymentHandler
	Webhook *handler.WebhookHandler
	Config  *handler.ConfigHandler
	Health  *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	h Handlers,
	tokenManager *token.JWTManager,
	limiter *middleware.RateLimiter,
	logger coreport.Logger,
) {
	// Health and operational endpoints live outside the rate-limited API surface
	router.GET("/health/live", h.Health.Live)
	router.GET("/health/ready", h.Health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(limiter.Limit(middleware.RuleAPI))

	// Public configuration
	api.GET("/config", h.Config.GetPublicConfig)

	// Auth routes with a tight brute-force budget
	users := api.Group("/users")
	{
		users.POST("/register", limiter.Limit(middleware.RuleAuth), h.Auth.Register)
		users.POST("/login", limiter.Limit(middleware.RuleAuth), h.Auth.Login)

		authed := users.Group("")
		authed.Use(middleware.Auth(tokenManager, logger))
		{
			authed.GET("/profile", h.User.GetProfile)
			authed.PUT("/profile", h.User.UpdateProfile)
			authed.GET("/dashboard", h.User.GetDashboard)
		}
	}

	// Listing routes; reads are public but owner-aware
	tickets := api.Group("/tickets")
	{
		tickets.GET("", middleware.OptionalAuth(tokenManager), h.Listing.Search)
		tickets.GET("/:id", middleware.OptionalAuth(tokenManager), h.Listing.Get)

		authed := tickets.Group("")
		authed.Use(middleware.Auth(tokenManager, logger))
		{
			authed.POST("", limiter.Limit(middleware.RuleCreateListing), h.Listing.Create)
			authed.PATCH("/:id", h.Listing.Update)
			authed.DELETE("/:id", h.Listing.Cancel)
			authed.PATCH("/:id/validation", h.Listing.SetValidation)
		}
	}

	// Payment routes; the webhook authenticates by signature, not bearer token
	payments := api.Group("/payments")
	{
		payments.POST("/webhook", h.Webhook.Handle)

		authed := payments.Group("")
		authed.Use(middleware.Auth(tokenManager, logger))
		{
			authed.POST("/initiate", limiter.Limit(middleware.RulePayment), h.Payment.Initiate)
			authed.POST("/confirm", limiter.Limit(middleware.RulePayment), h.Payment.Confirm)
			authed.GET("/transactions", h.Payment.ListTransactions)
			authed.POST("/transactions/:id/refund", h.Payment.Refund)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, m *metrics.Metrics) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS())
}
