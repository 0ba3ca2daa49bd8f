package model

import (
	"time"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Transaction represents the database model for settled purchases. The payout
// leg is embedded rather than a separate table; it has no identity of its own.
type Transaction struct {
	ID        uint64 `gorm:"primaryKey"`
	BuyerID   uint64 `gorm:"not null;index"`
	SellerID  uint64 `gorm:"not null;index"`
	ListingID uint64 `gorm:"not null;index"`

	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ServiceFee decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	// PaymentIntentID is the idempotency key; the unique index is what turns
	// a double-confirm race into a detectable duplicate error
	PaymentIntentID string `gorm:"uniqueIndex;not null;size:255"`
	ChargeID        string `gorm:"size:255"`

	Status string `gorm:"not null;size:16;index"`

	PayoutTransferID string          `gorm:"size:255"`
	PayoutStatus     string          `gorm:"not null;size:16;default:pending"`
	PayoutAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// ToEntity converts the database model to a domain entity
func (m *Transaction) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:              m.ID,
		BuyerID:         m.BuyerID,
		SellerID:        m.SellerID,
		ListingID:       m.ListingID,
		Amount:          m.Amount,
		ServiceFee:      m.ServiceFee,
		Total:           m.Total,
		PaymentIntentID: m.PaymentIntentID,
		ChargeID:        m.ChargeID,
		Status:          entity.TransactionStatus(m.Status),
		Payout: entity.SellerPayout{
			TransferID: m.PayoutTransferID,
			Status:     entity.PayoutStatus(m.PayoutStatus),
			Amount:     m.PayoutAmount,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TransactionFromEntity converts a domain entity to a database model
func TransactionFromEntity(t *entity.Transaction) *Transaction {
	return &Transaction{
		ID:               t.ID,
		BuyerID:          t.BuyerID,
		SellerID:         t.SellerID,
		ListingID:        t.ListingID,
		Amount:           t.Amount,
		ServiceFee:       t.ServiceFee,
		Total:            t.Total,
		PaymentIntentID:  t.PaymentIntentID,
		ChargeID:         t.ChargeID,
		Status:           string(t.Status),
		PayoutTransferID: t.Payout.TransferID,
		PayoutStatus:     string(t.Payout.Status),
		PayoutAmount:     t.Payout.Amount,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
