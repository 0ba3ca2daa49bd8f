package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{domainerr.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainerr.ErrUnauthorized, http.StatusForbidden},
		{domainerr.ErrUserNotFound, http.StatusNotFound},
		{domainerr.ErrListingNotFound, http.StatusNotFound},
		{domainerr.ErrTransactionNotFound, http.StatusNotFound},
		{domainerr.ErrDuplicateBarcode, http.StatusConflict},
		{domainerr.ErrDuplicateEmail, http.StatusConflict},
		{domainerr.ErrDuplicateTransaction, http.StatusConflict},
		{domainerr.ErrInvalidState, http.StatusConflict},
		{domainerr.ErrNotAvailable, http.StatusConflict},
		{domainerr.ErrSelfPurchase, http.StatusConflict},
		{domainerr.ErrPaymentNotSucceeded, http.StatusPaymentRequired},
		{domainerr.ErrNotEligible, http.StatusUnprocessableEntity},
		{domainerr.ErrVerificationMismatch, http.StatusUnprocessableEntity},
		{domainerr.ErrValidationFailed, http.StatusBadRequest},
		{domainerr.ErrInvalidAmount, http.StatusBadRequest},
		{domainerr.ErrInvalidEventDate, http.StatusBadRequest},
		{domainerr.ErrInvalidSignature, http.StatusBadRequest},
		{domainerr.ErrGateway, http.StatusBadGateway},
		{domainerr.ErrInternalServer, http.StatusInternalServerError},
		{errors.New("unmapped"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.status, httpStatus(tc.err), tc.err.Error())
	}

	t.Run("wrapped errors map through", func(t *testing.T) {
		wrapped := fmt.Errorf("creating listing: %w", domainerr.ErrDuplicateBarcode)
		assert.Equal(t, http.StatusConflict, httpStatus(wrapped))

		purchaseErr := domainerr.NewPurchaseError("pi_1", 10, 2, "conflict", domainerr.ErrNotAvailable)
		assert.Equal(t, http.StatusConflict, httpStatus(purchaseErr))
	})
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	doRespond := func(err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, err)

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w, body
	}

	t.Run("client error surfaces the domain message", func(t *testing.T) {
		w, body := doRespond(domainerr.ErrNotAvailable)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, domainerr.CodeNotAvailable, body.Code)
		assert.Equal(t, domainerr.ErrNotAvailable.Error(), body.Message)
		assert.Nil(t, body.Checks)
	})

	t.Run("server error is masked", func(t *testing.T) {
		w, body := doRespond(errors.New("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, domainerr.CodeInternalServer, body.Code)
		assert.Equal(t, "Internal server error", body.Message)
	})

	t.Run("eligibility rejection carries the check breakdown", func(t *testing.T) {
		w, body := doRespond(&domainerr.EligibilityError{
			TransferableOk: true,
			DateOk:         false,
			PriceOk:        true,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, domainerr.CodeNotEligible, body.Code)
		require.NotNil(t, body.Checks)
		assert.True(t, body.Checks.TransferableOk)
		assert.False(t, body.Checks.DateOk)
		assert.True(t, body.Checks.PriceOk)
	})
}
