package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidationFailed     = 4001
	CodeInvalidAmount        = 4002
	CodeInvalidEventDate     = 4003
	CodeDuplicateBarcode     = 4004
	CodeNotEligible          = 4005
	CodeInvalidState         = 4006
	CodeNotAvailable         = 4007
	CodeSelfPurchase         = 4008
	CodePaymentNotSucceeded  = 4009
	CodeVerificationMismatch = 4010
	CodeDuplicateTransaction = 4011
	CodeInvalidCredentials   = 4012
	CodeDuplicateEmail       = 4013
	CodeUnauthorized         = 4030
	CodeUserNotFound         = 4040
	CodeListingNotFound      = 4041
	CodeTransactionNotFound  = 4042
	CodeRateLimited          = 4290

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeGatewayError   = 5020
)

// Base error types
var (
	// ErrValidationFailed is returned when request input fails field validation
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidAmount is returned when a monetary amount is negative or malformed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidEventDate is returned when the event date is not strictly in the future
	ErrInvalidEventDate = errors.New("event date must be in the future")

	// ErrDuplicateBarcode is returned when a listing with the same ticket barcode already exists
	ErrDuplicateBarcode = errors.New("ticket with this barcode already exists")

	// ErrNotEligible is returned when a listing fails the resale eligibility checks
	ErrNotEligible = errors.New("listing is not eligible for resale")

	// ErrInvalidState is returned when an operation is not allowed in the listing's
	// or transaction's current state
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrNotAvailable is returned when a purchase is attempted against a listing
	// that is not currently available
	ErrNotAvailable = errors.New("listing is not available")

	// ErrSelfPurchase is returned when a buyer attempts to purchase their own listing
	ErrSelfPurchase = errors.New("cannot purchase your own listing")

	// ErrPaymentNotSucceeded is returned when the gateway does not report a
	// successful payment for the referenced intent
	ErrPaymentNotSucceeded = errors.New("payment has not succeeded")

	// ErrVerificationMismatch is returned when the payment intent metadata does not
	// match the caller's claims
	ErrVerificationMismatch = errors.New("payment verification failed")

	// ErrDuplicateTransaction is returned when a transaction already exists for the
	// same payment reference
	ErrDuplicateTransaction = errors.New("transaction with this payment reference already exists")

	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail is returned when registering with an email that is taken
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUnauthorized is returned when a requester is not the owner of the resource
	ErrUnauthorized = errors.New("not authorized to modify this resource")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrListingNotFound is returned when the requested listing doesn't exist
	ErrListingNotFound = errors.New("listing not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidSignature is returned when a webhook payload fails signature verification
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrGateway is returned when the payment gateway is unreachable or erroring;
	// callers should treat it as retryable
	ErrGateway = errors.New("payment gateway error")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return CodeValidationFailed
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidEventDate):
		return CodeInvalidEventDate
	case errors.Is(err, ErrDuplicateBarcode):
		return CodeDuplicateBarcode
	case errors.Is(err, ErrNotEligible):
		return CodeNotEligible
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, ErrNotAvailable):
		return CodeNotAvailable
	case errors.Is(err, ErrSelfPurchase):
		return CodeSelfPurchase
	case errors.Is(err, ErrPaymentNotSucceeded):
		return CodePaymentNotSucceeded
	case errors.Is(err, ErrVerificationMismatch):
		return CodeVerificationMismatch
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrDuplicateEmail):
		return CodeDuplicateEmail
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrListingNotFound):
		return CodeListingNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrGateway):
		return CodeGatewayError
	default:
		return CodeInternalServer
	}
}

// EligibilityError carries the individual resale checks so the API can report
// which rule rejected the listing
type EligibilityError struct {
	TransferableOk bool
	DateOk         bool
	PriceOk        bool
}

// Error implements the error interface
func (e *EligibilityError) Error() string {
	return fmt.Sprintf("listing not eligible for resale (transferable: %t, lead time: %t, price cap: %t)",
		e.TransferableOk, e.DateOk, e.PriceOk)
}

// Is checks if the target error is an ErrNotEligible
func (e *EligibilityError) Is(target error) bool {
	return target == ErrNotEligible
}

// LogFields returns a map of fields for structured logging
func (e *EligibilityError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "not_eligible",
		"transferable_ok": e.TransferableOk,
		"date_ok":         e.DateOk,
		"price_ok":        e.PriceOk,
		"error_code":      CodeNotEligible,
	}
}

// ListingError represents an error tied to a specific listing operation
type ListingError struct {
	ListingID uint64
	SellerID  uint64
	Reason    string
	Err       error
}

// Error implements the error interface for ListingError
func (e *ListingError) Error() string {
	return fmt.Sprintf("listing error for listing %d (seller: %d): %s - %v",
		e.ListingID, e.SellerID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *ListingError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ListingError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "listing_error",
		"listing_id": e.ListingID,
		"seller_id":  e.SellerID,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewListingError creates a detailed listing error
func NewListingError(listingID, sellerID uint64, reason string, err error) error {
	return &ListingError{
		ListingID: listingID,
		SellerID:  sellerID,
		Reason:    reason,
		Err:       err,
	}
}

// PurchaseError represents an error during the purchase/escrow flow
type PurchaseError struct {
	PaymentRef string
	ListingID  uint64
	BuyerID    uint64
	Reason     string
	Err        error
}

// Error implements the error interface for PurchaseError
func (e *PurchaseError) Error() string {
	return fmt.Sprintf("purchase error for payment %s (listing: %d, buyer: %d): %s - %v",
		e.PaymentRef, e.ListingID, e.BuyerID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *PurchaseError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PurchaseError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "purchase_error",
		"payment_ref": e.PaymentRef,
		"listing_id":  e.ListingID,
		"buyer_id":    e.BuyerID,
		"reason":      e.Reason,
		"error":       e.Err.Error(),
		"error_code":  ErrorCode(e.Err),
	}
}

// NewPurchaseError creates a detailed purchase error
func NewPurchaseError(paymentRef string, listingID, buyerID uint64, reason string, err error) error {
	return &PurchaseError{
		PaymentRef: paymentRef,
		ListingID:  listingID,
		BuyerID:    buyerID,
		Reason:     reason,
		Err:        err,
	}
}

// ReconciliationError marks a partially applied confirm sequence that must be
// repaired by a retry or a reconciliation job, never silently dropped.
type ReconciliationError struct {
	PaymentRef string
	ListingID  uint64
	Step       string
	Err        error
}

// Error implements the error interface
func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("confirm sequence left inconsistent at step %q for payment %s (listing: %d): %v",
		e.Step, e.PaymentRef, e.ListingID, e.Err)
}

// Unwrap returns the underlying error
func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ReconciliationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "reconciliation_required",
		"reconcile":   true,
		"payment_ref": e.PaymentRef,
		"listing_id":  e.ListingID,
		"step":        e.Step,
		"error":       e.Err.Error(),
	}
}

// IsDuplicateBarcodeError checks if the error is a duplicate barcode error
func IsDuplicateBarcodeError(err error) bool {
	return errors.Is(err, ErrDuplicateBarcode)
}

// IsNotEligibleError checks if the error is an eligibility rejection
func IsNotEligibleError(err error) bool {
	return errors.Is(err, ErrNotEligible)
}

// IsNotAvailableError checks if the error is a listing availability conflict
func IsNotAvailableError(err error) bool {
	return errors.Is(err, ErrNotAvailable)
}

// IsUnauthorizedError checks if the error is an ownership violation
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrListingNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsGatewayError checks if the error is a retryable payment gateway failure
func IsGatewayError(err error) bool {
	return errors.Is(err, ErrGateway)
}

// IsDuplicateTransactionError checks if the error is a duplicate transaction error
func IsDuplicateTransactionError(err error) bool {
	return errors.Is(err, ErrDuplicateTransaction)
}
