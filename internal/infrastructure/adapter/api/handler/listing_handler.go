package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/persistence"
	listingUseCase "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/listing"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListingHandler handles listing lifecycle HTTP requests
type ListingHandler struct {
	listingService *listingUseCase.Service
	metrics        *metrics.Metrics
	logger         coreport.Logger
}

// NewListingHandler creates a new listing handler instance
func NewListingHandler(
	listingService *listingUseCase.Service,
	m *metrics.Metrics,
	logger coreport.Logger,
) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		metrics:        m,
		logger:         logger,
	}
}

// Create handles the POST /api/tickets endpoint
func (h *ListingHandler) Create(c *gin.Context) {
	sellerID := middleware.AuthenticatedUserID(c)

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	l, err := h.listingService.Create(c.Request.Context(), entity.NewListingParams{
		SellerID:       sellerID,
		EventName:      req.EventName,
		EventDate:      req.EventDate,
		EventLocation:  req.EventLocation,
		EventVenue:     req.EventVenue,
		TicketType:     req.TicketType,
		SeatNumber:     req.SeatNumber,
		Section:        req.Section,
		Quantity:       quantity,
		OriginalPrice:  req.OriginalPrice,
		ResalePrice:    req.ResalePrice,
		Barcode:        req.Barcode,
		IsTransferable: req.IsTransferable,
		Description:    req.Description,
		Images:         req.Images,
	})
	if err != nil {
		if domainerr.IsNotEligibleError(err) {
			h.metrics.ListingsRejected.Inc()
		}
		respondError(c, err)
		return
	}

	h.metrics.ListingsCreated.Inc()
	c.JSON(http.StatusCreated, dto.ToListingResponse(l, sellerID))
}

// Search handles the GET /api/tickets endpoint
func (h *ListingHandler) Search(c *gin.Context) {
	filter := persistence.ListingFilter{
		Search:     c.Query("search"),
		Location:   c.Query("location"),
		TicketType: c.Query("ticketType"),
		SortBy:     c.Query("sortBy"),
		Descending: c.Query("order") == "desc",
	}

	if v := c.Query("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &d
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &d
		}
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	listings, total, err := h.listingService.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	viewerID := middleware.AuthenticatedUserID(c)
	c.JSON(http.StatusOK, dto.SearchListingsResponse{
		Listings: dto.ToListingResponses(listings, viewerID),
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
}

// Get handles the GET /api/tickets/:id endpoint
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	l, err := h.listingService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListingResponse(l, middleware.AuthenticatedUserID(c)))
}

// Update handles the PATCH /api/tickets/:id endpoint
func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}
	requesterID := middleware.AuthenticatedUserID(c)

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	l, err := h.listingService.Update(c.Request.Context(), id, requesterID, entity.ListingUpdate{
		ResalePrice: req.ResalePrice,
		Description: req.Description,
		Images:      req.Images,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListingResponse(l, requesterID))
}

// Cancel handles the DELETE /api/tickets/:id endpoint
func (h *ListingHandler) Cancel(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}
	requesterID := middleware.AuthenticatedUserID(c)

	if err := h.listingService.Cancel(c.Request.Context(), id, requesterID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetValidation handles the PATCH /api/tickets/:id/validation endpoint
func (h *ListingHandler) SetValidation(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var req dto.ValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	l, err := h.listingService.SetValidation(c.Request.Context(), id, entity.ValidationStatus(req.Status), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListingResponse(l, middleware.AuthenticatedUserID(c)))
}

// listingID parses the :id path parameter
func (h *ListingHandler) listingID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid listing ID format",
		})
		return 0, false
	}
	return id, true
}
