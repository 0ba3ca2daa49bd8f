package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		err  error
		code int
	}{
		{ErrValidationFailed, CodeValidationFailed},
		{ErrInvalidAmount, CodeInvalidAmount},
		{ErrInvalidEventDate, CodeInvalidEventDate},
		{ErrDuplicateBarcode, CodeDuplicateBarcode},
		{ErrNotEligible, CodeNotEligible},
		{ErrInvalidState, CodeInvalidState},
		{ErrNotAvailable, CodeNotAvailable},
		{ErrSelfPurchase, CodeSelfPurchase},
		{ErrPaymentNotSucceeded, CodePaymentNotSucceeded},
		{ErrVerificationMismatch, CodeVerificationMismatch},
		{ErrDuplicateTransaction, CodeDuplicateTransaction},
		{ErrInvalidCredentials, CodeInvalidCredentials},
		{ErrDuplicateEmail, CodeDuplicateEmail},
		{ErrUnauthorized, CodeUnauthorized},
		{ErrUserNotFound, CodeUserNotFound},
		{ErrListingNotFound, CodeListingNotFound},
		{ErrTransactionNotFound, CodeTransactionNotFound},
		{ErrGateway, CodeGatewayError},
		{errors.New("anything else"), CodeInternalServer},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.code, ErrorCode(tc.err), tc.err.Error())
	}
}

func TestErrorCodeUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: quantity must be at least 1", ErrValidationFailed)
	assert.Equal(t, CodeValidationFailed, ErrorCode(wrapped))

	doubleWrapped := fmt.Errorf("creating listing: %w", wrapped)
	assert.Equal(t, CodeValidationFailed, ErrorCode(doubleWrapped))
}

func TestEligibilityError(t *testing.T) {
	err := &EligibilityError{TransferableOk: true, DateOk: false, PriceOk: true}

	assert.True(t, errors.Is(err, ErrNotEligible))
	assert.Equal(t, CodeNotEligible, ErrorCode(err))
	assert.Contains(t, err.Error(), "lead time: false")

	fields := err.LogFields()
	assert.Equal(t, false, fields["date_ok"])
	assert.Equal(t, true, fields["transferable_ok"])
}

func TestListingError(t *testing.T) {
	err := NewListingError(10, 1, "duplicate barcode", ErrDuplicateBarcode)

	assert.True(t, errors.Is(err, ErrDuplicateBarcode))
	assert.Equal(t, CodeDuplicateBarcode, ErrorCode(err))

	var le *ListingError
	assert.True(t, errors.As(err, &le))
	assert.Equal(t, uint64(10), le.ListingID)
}

func TestPurchaseError(t *testing.T) {
	err := NewPurchaseError("pi_123", 10, 2, "listing already reserved", ErrNotAvailable)

	assert.True(t, errors.Is(err, ErrNotAvailable))
	assert.Equal(t, CodeNotAvailable, ErrorCode(err))
	assert.Contains(t, err.Error(), "pi_123")
}

func TestReconciliationError(t *testing.T) {
	inner := errors.New("connection reset")
	err := &ReconciliationError{PaymentRef: "pi_123", ListingID: 10, Step: "finalize", Err: inner}

	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "finalize")
	assert.Equal(t, true, err.LogFields()["reconcile"])
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsDuplicateBarcodeError(fmt.Errorf("x: %w", ErrDuplicateBarcode)))
	assert.True(t, IsNotEligibleError(&EligibilityError{}))
	assert.True(t, IsNotAvailableError(ErrNotAvailable))
	assert.True(t, IsUnauthorizedError(ErrUnauthorized))
	assert.True(t, IsGatewayError(fmt.Errorf("call failed: %w", ErrGateway)))
	assert.True(t, IsDuplicateTransactionError(ErrDuplicateTransaction))

	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(ErrListingNotFound))
	assert.True(t, IsNotFoundError(ErrTransactionNotFound))
	assert.False(t, IsNotFoundError(ErrNotAvailable))
}
