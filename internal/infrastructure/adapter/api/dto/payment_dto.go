package dto

import (
	"time"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/usecase/purchase"
)

// InitiatePaymentRequest opens a payment intent for a listing
type InitiatePaymentRequest struct {
	ListingID uint64 `json:"listingId" binding:"required"`
}

// InitiatePaymentResponse returns the gateway handle the client needs to
// collect the payment
type InitiatePaymentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Amount          string `json:"amount"`
	ServiceFee      string `json:"serviceFee"`
	Total           string `json:"total"`
}

// ConfirmPaymentRequest settles a purchase after client-side payment success
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	ListingID       uint64 `json:"listingId" binding:"required"`
}

// PayoutResponse is the payout leg of a transaction
type PayoutResponse struct {
	TransferID string `json:"transferId,omitempty"`
	Status     string `json:"status"`
	Amount     string `json:"amount"`
}

// TransactionResponse is the API view of a settled purchase
type TransactionResponse struct {
	ID              uint64         `json:"id"`
	BuyerID         uint64         `json:"buyerId"`
	SellerID        uint64         `json:"sellerId"`
	ListingID       uint64         `json:"listingId"`
	Amount          string         `json:"amount"`
	ServiceFee      string         `json:"serviceFee"`
	Total           string         `json:"total"`
	PaymentIntentID string         `json:"paymentIntentId"`
	Status          string         `json:"status"`
	Payout          PayoutResponse `json:"payout"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// ToInitiatePaymentResponse converts an initiate result to its API representation
func ToInitiatePaymentResponse(r *purchase.InitiateResult) InitiatePaymentResponse {
	return InitiatePaymentResponse{
		PaymentIntentID: r.PaymentIntentID,
		ClientSecret:    r.ClientSecret,
		Amount:          r.Amount.StringFixed(2),
		ServiceFee:      r.ServiceFee.StringFixed(2),
		Total:           r.Total.StringFixed(2),
	}
}

// ToTransactionResponse converts a transaction entity to its API representation
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		BuyerID:         t.BuyerID,
		SellerID:        t.SellerID,
		ListingID:       t.ListingID,
		Amount:          t.Amount.StringFixed(2),
		ServiceFee:      t.ServiceFee.StringFixed(2),
		Total:           t.Total.StringFixed(2),
		PaymentIntentID: t.PaymentIntentID,
		Status:          string(t.Status),
		Payout: PayoutResponse{
			TransferID: t.Payout.TransferID,
			Status:     string(t.Payout.Status),
			Amount:     t.Payout.Amount.StringFixed(2),
		},
		CreatedAt: t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transaction entities
func ToTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}
