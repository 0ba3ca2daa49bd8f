package purchase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/payment"
	"github.com/shopspring/decimal"
)

// Confirm settles a purchase after the buyer's client reports payment success.
// The gateway's intent state is authoritative: the intent must report
// succeeded and its metadata must match the caller's claims. On success the
// transaction record, the listing finalization and the payout initialization
// are committed as a single unit of work; a retry with the same payment
// reference returns the already-settled transaction.
func (s *Service) Confirm(ctx context.Context, buyerID uint64, paymentRef string, listingID uint64) (*entity.Transaction, error) {
	// Fast idempotency path: a concurrent Confirm or webhook may have settled
	// this payment already.
	if txn, found, err := s.findExisting(ctx, paymentRef); err != nil {
		return nil, err
	} else if found {
		return txn, nil
	}

	gctx, cancel := s.gatewayCtx(ctx)
	defer cancel()

	intent, err := s.gateway.RetrieveIntent(gctx, paymentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if intent.Status != payment.IntentSucceeded {
		return nil, errs.NewPurchaseError(paymentRef, listingID, buyerID,
			intentStatusMessage(intent.Status), errs.ErrPaymentNotSucceeded)
	}

	// Defense against client tampering: the intent's bound listing and buyer
	// must match the caller's claim. On mismatch the listing stays pending and
	// is flagged for reconciliation rather than silently released.
	if intent.Metadata[payment.MetaListingID] != strconv.FormatUint(listingID, 10) ||
		intent.Metadata[payment.MetaBuyerID] != strconv.FormatUint(buyerID, 10) {
		s.logger.Error("Payment metadata does not match confirm claims", (&errs.ReconciliationError{
			PaymentRef: paymentRef,
			ListingID:  listingID,
			Step:       "verify-metadata",
			Err:        errs.ErrVerificationMismatch,
		}).LogFields())
		return nil, errs.NewPurchaseError(paymentRef, listingID, buyerID,
			"metadata mismatch", errs.ErrVerificationMismatch)
	}

	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	fees, err := s.chargedFees(intent)
	if err != nil {
		return nil, errs.NewPurchaseError(paymentRef, listingID, buyerID,
			"charged amount does not reconcile", errs.ErrVerificationMismatch)
	}

	txn, err := s.settle(ctx, buyerID, l, fees, intent)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase confirmed", map[string]any{
		"transaction_id": txn.ID,
		"listing_id":     listingID,
		"buyer_id":       buyerID,
		"payment_ref":    paymentRef,
		"total":          txn.Total.String(),
	})

	// The payout leg runs after the commit and on its own clock; a failure
	// here leaves the payout pending and retryable, it never unwinds the sale.
	s.beginPayout(ctx, txn)

	return txn, nil
}

// settle writes the transaction record, finalizes the listing and links the
// buyer and seller in one atomic commit. A duplicate payment reference means
// a concurrent settle won the race; the existing record is returned.
func (s *Service) settle(
	ctx context.Context,
	buyerID uint64,
	l *entity.Listing,
	fees entity.FeeBreakdown,
	intent *payment.Intent,
) (*entity.Transaction, error) {
	txn, err := entity.NewTransaction(buyerID, l.SellerID, l.ID, fees, intent.ID, intent.ChargeID, s.timeProvider)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settle transaction: %w", err)
	}

	txnRepo := s.uow.GetTransactionRepository(txCtx)
	if err := txnRepo.Create(txCtx, txn); err != nil {
		_ = s.uow.Rollback(txCtx)
		if errs.IsDuplicateTransactionError(err) {
			existing, found, ferr := s.findExisting(ctx, intent.ID)
			if ferr == nil && found {
				return existing, nil
			}
			return nil, err
		}
		return nil, err
	}

	listingRepo := s.uow.GetListingRepository(txCtx)
	if err := listingRepo.Finalize(txCtx, l.ID, txn.ID); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, errs.NewPurchaseError(intent.ID, l.ID, buyerID, "finalize failed", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		// The store may or may not have applied the commit; flag for
		// reconciliation instead of guessing.
		recErr := &errs.ReconciliationError{
			PaymentRef: intent.ID,
			ListingID:  l.ID,
			Step:       "commit",
			Err:        err,
		}
		s.logger.Error("Settle commit failed", recErr.LogFields())
		return nil, recErr
	}

	return txn, nil
}

// chargedFees reconstructs the fee breakdown from the intent's server-written
// metadata and cross-checks it against the amount actually charged
func (s *Service) chargedFees(intent *payment.Intent) (entity.FeeBreakdown, error) {
	price, err := decimal.NewFromString(intent.Metadata[payment.MetaPrice])
	if err != nil {
		return entity.FeeBreakdown{}, fmt.Errorf("malformed price metadata: %w", err)
	}

	fees := entity.ComputeFees(price, s.policy.ServiceFeeRate)
	if entity.ToMinorUnits(fees.Total) != intent.AmountMinor {
		return entity.FeeBreakdown{}, fmt.Errorf("charged %d minor units, expected %d",
			intent.AmountMinor, entity.ToMinorUnits(fees.Total))
	}
	return fees, nil
}

// beginPayout opens the gateway transfer that moves the payout sub-state from
// pending to processing. Sellers without a connected payout account keep the
// payout pending.
func (s *Service) beginPayout(ctx context.Context, txn *entity.Transaction) {
	seller, err := s.userRepo.GetByID(ctx, txn.SellerID)
	if err != nil {
		s.logger.Warn("Payout deferred: seller lookup failed", map[string]any{
			"transaction_id": txn.ID,
			"seller_id":      txn.SellerID,
			"error":          err.Error(),
		})
		return
	}
	if seller.PayoutAccountID == "" {
		s.logger.Info("Payout deferred: seller has no payout account", map[string]any{
			"transaction_id": txn.ID,
			"seller_id":      txn.SellerID,
		})
		return
	}

	gctx, cancel := s.gatewayCtx(ctx)
	defer cancel()

	transfer, err := s.gateway.CreateTransfer(gctx, entity.ToMinorUnits(txn.Payout.Amount), s.currency,
		seller.PayoutAccountID, payment.Metadata{
			payment.MetaTransactionID: strconv.FormatUint(txn.ID, 10),
		})
	if err != nil {
		s.logger.Warn("Payout deferred: transfer creation failed", map[string]any{
			"transaction_id": txn.ID,
			"seller_id":      txn.SellerID,
			"error":          err.Error(),
		})
		return
	}

	if err := txn.StartPayout(transfer.ID, s.timeProvider); err != nil {
		s.logger.Warn("Payout state transition rejected", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		return
	}
	if err := s.transactionRepo.Update(ctx, txn); err != nil {
		s.logger.Error("Failed to persist payout start", (&errs.ReconciliationError{
			PaymentRef: txn.PaymentIntentID,
			ListingID:  txn.ListingID,
			Step:       "payout-start",
			Err:        err,
		}).LogFields())
	}
}

// intentStatusMessage maps gateway intent statuses to user-facing reasons
func intentStatusMessage(status string) string {
	switch status {
	case payment.IntentProcessing:
		return "payment is still processing"
	case payment.IntentRequiresPaymentMethod:
		return "payment method required"
	case payment.IntentRequiresConfirmation:
		return "payment requires confirmation"
	case payment.IntentRequiresAction:
		return "payment requires additional action"
	case payment.IntentCanceled:
		return "payment was canceled"
	default:
		return "payment not completed"
	}
}
