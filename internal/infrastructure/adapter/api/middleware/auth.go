package middleware

import (
	"net/http"
	"strings"

	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/token"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// Auth verifies the bearer token and stores the authenticated identity in the
// request context. Requests without a valid token are rejected.
func Auth(tokenManager *token.JWTManager, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeUnauthorized,
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		userID, email, err := tokenManager.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Debug("Token verification failed", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeUnauthorized,
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, email)
		c.Next()
	}
}

// AuthenticatedUserID returns the user ID stored by the Auth middleware.
// Returns 0 when the request is unauthenticated.
func AuthenticatedUserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

// OptionalAuth extracts the identity when a valid token is present but lets
// unauthenticated requests through. Used on public reads that tailor their
// response for the owner.
func OptionalAuth(tokenManager *token.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if userID, email, err := tokenManager.Verify(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(ContextUserID, userID)
				c.Set(ContextUserEmail, email)
			}
		}
		c.Next()
	}
}
