package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ConfigHandler exposes the client-safe configuration
type ConfigHandler struct {
	publishableKey string
	currency       string
	policy         entity.ResalePolicy
}

// NewConfigHandler creates a new config handler instance
func NewConfigHandler(publishableKey, currency string, policy entity.ResalePolicy) *ConfigHandler {
	return &ConfigHandler{
		publishableKey: publishableKey,
		currency:       currency,
		policy:         policy,
	}
}

// GetPublicConfig handles the GET /api/config endpoint
func (h *ConfigHandler) GetPublicConfig(c *gin.Context) {
	feeRate, _ := h.policy.ServiceFeeRate.Float64()
	priceCap, _ := h.policy.PriceCapMultiplier.Float64()

	c.JSON(http.StatusOK, dto.PublicConfigResponse{
		PublishableKey:     h.publishableKey,
		Currency:           h.currency,
		ServiceFeeRate:     feeRate,
		PriceCapMultiplier: priceCap,
		MinResaleLeadHours: h.policy.MinResaleLeadTime.Hours(),
	})
}
