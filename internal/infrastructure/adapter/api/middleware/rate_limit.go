package middleware

import (
	"fmt"
	"net/http"
	"time"

	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitRule is one fixed-window budget
type RateLimitRule struct {
	// Scope names the limiter in redis keys, metrics and error messages
	Scope  string
	Limit  int64
	Window time.Duration
}

// Per-route budgets. Auth and payment endpoints get tight budgets; the
// general API budget is per client and generous.
var (
	RuleAPI           = RateLimitRule{Scope: "api", Limit: 100, Window: 15 * time.Minute}
	RuleAuth          = RateLimitRule{Scope: "auth", Limit: 5, Window: 15 * time.Minute}
	RulePayment       = RateLimitRule{Scope: "payment", Limit: 10, Window: time.Hour}
	RuleCreateListing = RateLimitRule{Scope: "create-listing", Limit: 20, Window: time.Hour}
)

// RateLimiter enforces fixed-window budgets backed by redis INCR/EXPIRE
type RateLimiter struct {
	redis   *redis.Client
	logger  coreport.Logger
	metrics *metrics.Metrics
}

// NewRateLimiter creates a rate limiter
func NewRateLimiter(redisClient *redis.Client, logger coreport.Logger, m *metrics.Metrics) *RateLimiter {
	return &RateLimiter{
		redis:   redisClient,
		logger:  logger,
		metrics: m,
	}
}

// Limit returns a middleware enforcing the given rule. Authenticated requests
// are keyed by user, anonymous ones by client IP. When redis is unreachable
// the request is allowed through; rate limiting is protection, not correctness.
func (r *RateLimiter) Limit(rule RateLimitRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", rule.Scope, r.identity(c))

		count, err := r.redis.Incr(c.Request.Context(), key).Result()
		if err != nil {
			r.logger.Warn("Rate limiter unavailable, allowing request", map[string]any{
				"scope": rule.Scope,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		if count == 1 {
			r.redis.Expire(c.Request.Context(), key, rule.Window)
		}

		if count > rule.Limit {
			if r.metrics != nil {
				r.metrics.RateLimited.WithLabelValues(rule.Scope).Inc()
			}
			r.logger.Warn("Rate limit exceeded", map[string]any{
				"scope": rule.Scope,
				"key":   key,
				"count": count,
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    domainerr.CodeRateLimited,
				Message: "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}

// identity keys the window by user when authenticated, otherwise by IP
func (r *RateLimiter) identity(c *gin.Context) string {
	if userID := AuthenticatedUserID(c); userID != 0 {
		return fmt.Sprintf("user:%d", userID)
	}
	return "ip:" + c.ClientIP()
}
