package persistence

import (
	"context"
)

// UnitOfWork coordinates multi-record commits. The purchase confirm sequence
// (create transaction, finalize listing) runs inside one unit so a partial
// failure rolls back atomically instead of leaving the store inconsistent.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetListingRepository returns a listing repository bound to the current transaction
	GetListingRepository(ctx context.Context) ListingRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository
}
