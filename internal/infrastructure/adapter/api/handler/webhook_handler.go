package handler

import (
	"io"
	"net/http"

	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/payment"
	purchaseUseCase "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/purchase"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds the webhook payload size
const maxWebhookBody = 1 << 20

// WebhookHandler receives gateway webhook notifications
type WebhookHandler struct {
	gateway         payment.Gateway
	purchaseService *purchaseUseCase.Service
	metrics         *metrics.Metrics
	logger          coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(
	gateway payment.Gateway,
	purchaseService *purchaseUseCase.Service,
	m *metrics.Metrics,
	logger coreport.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		gateway:         gateway,
		purchaseService: purchaseService,
		metrics:         m,
		logger:          logger,
	}
}

// Handle processes the POST /api/payments/webhook endpoint. The signature is
// verified against the raw body before anything is parsed; unverifiable
// payloads are rejected without side effects.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Failed to read request body",
		})
		return
	}

	event, err := h.gateway.VerifyWebhook(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.metrics.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
		h.logger.Warn("Webhook signature verification failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidationFailed),
			Message: "Invalid webhook signature",
		})
		return
	}

	if err := h.purchaseService.HandleGatewayEvent(c.Request.Context(), event); err != nil {
		h.metrics.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
		h.logger.Error("Webhook processing failed", map[string]any{
			"event_id":   event.ID,
			"event_type": event.Type,
			"error":      err.Error(),
		})
		// Non-2xx makes the gateway redeliver; every event path is idempotent
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Event processing failed",
		})
		return
	}

	h.metrics.WebhookEvents.WithLabelValues(event.Type, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"received": true})
}
