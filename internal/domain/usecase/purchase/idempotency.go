package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
)

// findExisting checks whether a transaction already settled for the given
// payment reference. The gateway payment reference is the idempotency key:
// Confirm and the webhook path race, and the unique index on the reference is
// the only correctness mechanism between them.
func (s *Service) findExisting(ctx context.Context, paymentRef string) (*entity.Transaction, bool, error) {
	exists, err := s.transactionRepo.ExistsByPaymentIntentID(ctx, paymentRef)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check for existing transaction: %w", err)
	}
	if !exists {
		return nil, false, nil
	}

	txn, err := s.transactionRepo.GetByPaymentIntentID(ctx, paymentRef)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			// Existed when we checked but gone before retrieval. Treat as absent.
			return nil, false, nil
		}
		return nil, true, fmt.Errorf("failed to retrieve existing transaction: %w", err)
	}
	return txn, true, nil
}
