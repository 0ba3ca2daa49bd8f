package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	userUseCase "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles profile and dashboard requests
type UserHandler struct {
	userService *userUseCase.Service
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userService *userUseCase.Service, logger coreport.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile handles the GET /api/users/profile endpoint
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	u, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// UpdateProfile handles the PUT /api/users/profile endpoint
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	u, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// GetDashboard handles the GET /api/users/dashboard endpoint
func (h *UserHandler) GetDashboard(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	d, err := h.userService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load dashboard", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Listings:  dto.ToListingResponses(d.Listings, userID),
		Purchases: dto.ToTransactionResponses(d.Purchases),
		Sales:     dto.ToTransactionResponses(d.Sales),
		Stats: dto.DashboardStats{
			ActiveListings: d.Stats.ActiveListings,
			TotalSales:     d.Stats.TotalSales,
			TotalPurchases: d.Stats.TotalPurchases,
		},
	})
}
