package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	tport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// Transaction statuses: pending -> completed | failed, completed -> refunded
const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnRefunded  TransactionStatus = "refunded"
)

// PayoutStatus defines the seller payout sub-state, which runs on its own
// clock independent of the parent transaction
type PayoutStatus string

// Payout statuses: pending -> processing -> completed | failed
const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutCompleted  PayoutStatus = "completed"
	PayoutFailed     PayoutStatus = "failed"
)

// SellerPayout is the nested payout leg of a transaction
type SellerPayout struct {
	TransferID string
	Status     PayoutStatus
	Amount     decimal.Decimal
}

// Transaction represents one settled purchase against exactly one listing.
// It is created only once the gateway confirms payment; at most one active
// transaction exists per listing, enforced by a unique payment reference and
// the listing's conditional state transition.
type Transaction struct {
	ID        uint64
	BuyerID   uint64
	SellerID  uint64 // denormalized from the listing at creation time
	ListingID uint64

	Amount     decimal.Decimal // ticket price
	ServiceFee decimal.Decimal // derived, never trusted from the client
	Total      decimal.Decimal // amount + serviceFee

	PaymentIntentID string // external gateway reference, idempotency key
	ChargeID        string

	Status TransactionStatus
	Payout SellerPayout

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTransaction creates a completed transaction for a confirmed payment.
// The fee breakdown is recomputed by the caller from the listing price, not
// taken from the client.
func NewTransaction(
	buyerID, sellerID, listingID uint64,
	fees FeeBreakdown,
	paymentIntentID string,
	chargeID string,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	if buyerID == 0 || sellerID == 0 || listingID == 0 {
		return nil, fmt.Errorf("%w: buyer, seller and listing are required", errs.ErrValidationFailed)
	}
	if paymentIntentID == "" {
		return nil, fmt.Errorf("%w: payment reference is required", errs.ErrValidationFailed)
	}
	if err := ValidateAmount(fees.Amount); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Transaction{
		BuyerID:         buyerID,
		SellerID:        sellerID,
		ListingID:       listingID,
		Amount:          fees.Amount,
		ServiceFee:      fees.ServiceFee,
		Total:           fees.Total,
		PaymentIntentID: paymentIntentID,
		ChargeID:        chargeID,
		Status:          TxnCompleted,
		Payout: SellerPayout{
			Status: PayoutPending,
			Amount: fees.Amount,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Refund transitions completed -> refunded. Payout reversal is an external
// gateway concern; only the state is marked here.
func (t *Transaction) Refund(timeProvider tport.TimeProvider) error {
	if t.Status != TxnCompleted {
		return fmt.Errorf("%w: only completed transactions can be refunded, is %s", errs.ErrInvalidState, t.Status)
	}
	t.Status = TxnRefunded
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// StartPayout moves the payout leg to processing once a gateway transfer is opened
func (t *Transaction) StartPayout(transferID string, timeProvider tport.TimeProvider) error {
	if t.Payout.Status != PayoutPending {
		return fmt.Errorf("%w: payout must be pending to start, is %s", errs.ErrInvalidState, t.Payout.Status)
	}
	t.Payout.TransferID = transferID
	t.Payout.Status = PayoutProcessing
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// CompletePayout marks the payout leg completed
func (t *Transaction) CompletePayout(timeProvider tport.TimeProvider) error {
	if t.Payout.Status != PayoutProcessing {
		return fmt.Errorf("%w: payout must be processing to complete, is %s", errs.ErrInvalidState, t.Payout.Status)
	}
	t.Payout.Status = PayoutCompleted
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// FailPayout marks the payout leg failed
func (t *Transaction) FailPayout(timeProvider tport.TimeProvider) error {
	if t.Payout.Status != PayoutProcessing && t.Payout.Status != PayoutPending {
		return fmt.Errorf("%w: payout already settled as %s", errs.ErrInvalidState, t.Payout.Status)
	}
	t.Payout.Status = PayoutFailed
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// InvolvesUser reports whether the user is the buyer or the seller
func (t *Transaction) InvolvesUser(userID uint64) bool {
	return t.BuyerID == userID || t.SellerID == userID
}
