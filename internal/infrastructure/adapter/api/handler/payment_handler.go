package handler

import (
	"net/http"
	"strconv"

	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/persistence"
	purchaseUseCase "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/purchase"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the purchase/escrow HTTP requests
type PaymentHandler struct {
	purchaseService *purchaseUseCase.Service
	metrics         *metrics.Metrics
	logger          coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(
	purchaseService *purchaseUseCase.Service,
	m *metrics.Metrics,
	logger coreport.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		purchaseService: purchaseService,
		metrics:         m,
		logger:          logger,
	}
}

// Initiate handles the POST /api/payments/initiate endpoint
func (h *PaymentHandler) Initiate(c *gin.Context) {
	buyerID := middleware.AuthenticatedUserID(c)

	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.purchaseService.Initiate(c.Request.Context(), buyerID, req.ListingID)
	if err != nil {
		if domainerr.IsNotAvailableError(err) {
			h.metrics.ReservationConflicts.Inc()
		}
		respondError(c, err)
		return
	}

	h.metrics.PurchasesInitiated.Inc()
	c.JSON(http.StatusOK, dto.ToInitiatePaymentResponse(result))
}

// Confirm handles the POST /api/payments/confirm endpoint
func (h *PaymentHandler) Confirm(c *gin.Context) {
	buyerID := middleware.AuthenticatedUserID(c)

	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	txn, err := h.purchaseService.Confirm(c.Request.Context(), buyerID, req.PaymentIntentID, req.ListingID)
	if err != nil {
		h.metrics.PurchasesFailed.Inc()
		h.logger.Warn("Purchase confirmation rejected", map[string]any{
			"buyer_id":    buyerID,
			"listing_id":  req.ListingID,
			"payment_ref": req.PaymentIntentID,
			"error":       err.Error(),
		})
		respondError(c, err)
		return
	}

	h.metrics.PurchasesConfirmed.Inc()
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// ListTransactions handles the GET /api/payments/transactions endpoint.
// The role query filters purchases, sales or all.
func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	role := persistence.TransactionRole(c.DefaultQuery("role", string(persistence.RoleAny)))
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	transactions, err := h.purchaseService.ListTransactions(c.Request.Context(), userID, role, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(transactions))
}

// Refund handles the POST /api/payments/transactions/:id/refund endpoint
func (h *PaymentHandler) Refund(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid transaction ID format",
		})
		return
	}

	txn, err := h.purchaseService.Refund(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
