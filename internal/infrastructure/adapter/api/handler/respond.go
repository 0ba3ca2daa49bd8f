package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// httpStatus maps domain errors to HTTP status codes
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case domainerr.IsUnauthorizedError(err):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicateBarcode),
		errors.Is(err, domainerr.ErrDuplicateEmail),
		errors.Is(err, domainerr.ErrDuplicateTransaction),
		errors.Is(err, domainerr.ErrInvalidState),
		errors.Is(err, domainerr.ErrNotAvailable),
		errors.Is(err, domainerr.ErrSelfPurchase):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrPaymentNotSucceeded):
		return http.StatusPaymentRequired
	case errors.Is(err, domainerr.ErrNotEligible),
		errors.Is(err, domainerr.ErrVerificationMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerr.ErrValidationFailed),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrInvalidEventDate),
		errors.Is(err, domainerr.ErrInvalidRequest),
		errors.Is(err, domainerr.ErrInvalidSignature):
		return http.StatusBadRequest
	case domainerr.IsGatewayError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error body for a domain error.
// Eligibility rejections additionally carry the per-check breakdown.
func respondError(c *gin.Context, err error) {
	status := httpStatus(err)

	resp := dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: errorMessage(err, status),
	}

	var eligErr *domainerr.EligibilityError
	if errors.As(err, &eligErr) {
		resp.Checks = &dto.EligibilityChecks{
			TransferableOk: eligErr.TransferableOk,
			DateOk:         eligErr.DateOk,
			PriceOk:        eligErr.PriceOk,
		}
	}

	c.JSON(status, resp)
}

// errorMessage picks the user-facing message. Internal errors are masked;
// client errors surface the domain error text.
func errorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
