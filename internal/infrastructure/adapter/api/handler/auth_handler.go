package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	userUseCase "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/token"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	userService  *userUseCase.Service
	tokenManager *token.JWTManager
	logger       coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(
	userService *userUseCase.Service,
	tokenManager *token.JWTManager,
	logger coreport.Logger,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register handles the POST /api/users/register endpoint
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	u, err := h.userService.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		h.logger.Debug("Registration rejected", map[string]any{
			"email": req.Email,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	signed, err := h.tokenManager.Generate(u.ID, u.Email)
	if err != nil {
		h.logger.Error("Failed to issue token after registration", map[string]any{
			"user_id": u.ID,
			"error":   err.Error(),
		})
		respondError(c, domainerr.ErrInternalServer)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: signed,
		User:  dto.ToUserResponse(u),
	})
}

// Login handles the POST /api/users/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	u, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Wrong email and wrong password are indistinguishable on purpose
		respondError(c, err)
		return
	}

	signed, err := h.tokenManager.Generate(u.ID, u.Email)
	if err != nil {
		h.logger.Error("Failed to issue token after login", map[string]any{
			"user_id": u.ID,
			"error":   err.Error(),
		})
		respondError(c, domainerr.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: signed,
		User:  dto.ToUserResponse(u),
	})
}
