package persistence

import (
	"context"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
)

// TransactionRole filters a user's transaction history
type TransactionRole string

// Transaction roles
const (
	RoleBuyer  TransactionRole = "purchases"
	RoleSeller TransactionRole = "sales"
	RoleAny    TransactionRole = "all"
)

// TransactionRepository defines persistence for settled purchase transactions
type TransactionRepository interface {
	// Create saves a new transaction. The unique index on the payment intent
	// reference is the idempotency barrier between Confirm and the webhook path.
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a transaction with the same payment reference exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update persists status and payout mutations
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the transaction doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the transaction doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// GetByPaymentIntentID retrieves a transaction by its gateway payment reference
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has this reference
	// - ErrDatabaseConnection: If database connection fails
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Transaction, error)

	// ExistsByPaymentIntentID checks for a transaction with the given payment
	// reference. Used for idempotency checking.
	ExistsByPaymentIntentID(ctx context.Context, paymentIntentID string) (bool, error)

	// ListByUser returns a user's transactions in the given role, newest first
	ListByUser(ctx context.Context, userID uint64, role TransactionRole, limit int) ([]*entity.Transaction, error)

	// CountBySellerAndStatus counts a seller's transactions in the given status
	CountBySellerAndStatus(ctx context.Context, sellerID uint64, status entity.TransactionStatus) (int64, error)
}
