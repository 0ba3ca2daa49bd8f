package payment

import (
	"context"
)

// Intent statuses reported by the gateway
const (
	IntentSucceeded             = "succeeded"
	IntentProcessing            = "processing"
	IntentRequiresPaymentMethod = "requires_payment_method"
	IntentRequiresConfirmation  = "requires_confirmation"
	IntentRequiresAction        = "requires_action"
	IntentCanceled              = "canceled"
)

// Webhook event types dispatched into the escrow state machine
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventTransferPaid     = "transfer.paid"
	EventTransferFailed   = "transfer.failed"
)

// Metadata is the opaque key/value bag bound to an intent at creation time.
// Confirm verifies it against the caller's claims to defeat client tampering.
type Metadata map[string]string

// Well-known metadata keys
const (
	MetaListingID     = "listingId"
	MetaBuyerID       = "buyerId"
	MetaSellerID      = "sellerId"
	MetaPrice         = "ticketPrice"
	MetaServiceFee    = "serviceFee"
	MetaTransactionID = "transactionId"
)

// Intent is the gateway's handle for an in-progress charge attempt
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountMinor  int64
	Currency     string
	ChargeID     string
	Metadata     Metadata
}

// Transfer is the gateway's handle for a seller payout
type Transfer struct {
	ID          string
	Status      string
	AmountMinor int64
	Metadata    Metadata
}

// Event is a verified webhook notification
type Event struct {
	ID       string
	Type     string
	Intent   *Intent
	Transfer *Transfer
}

// Gateway is the opaque external payment processor. Implementations must honor
// the caller's context deadline; a timeout is a retryable failure, never success.
type Gateway interface {
	// CreateIntent opens a payment intent for the given amount in minor units
	//
	// Possible errors:
	// - ErrGateway: If the gateway is unreachable or rejects the request
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata Metadata) (*Intent, error)

	// RetrieveIntent fetches the authoritative state of an intent
	//
	// Possible errors:
	// - ErrGateway: If the gateway is unreachable or the intent is unknown
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)

	// CreateTransfer opens a payout transfer to a seller
	//
	// Possible errors:
	// - ErrGateway: If the gateway is unreachable or rejects the request
	CreateTransfer(ctx context.Context, amountMinor int64, currency string, destination string, metadata Metadata) (*Transfer, error)

	// VerifyWebhook checks the payload signature and decodes the event
	//
	// Possible errors:
	// - ErrInvalidSignature: If the signature does not match the payload
	VerifyWebhook(payload []byte, signature string) (*Event, error)
}
