package purchase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/payment"
)

// HandleGatewayEvent dispatches a verified gateway webhook into the escrow
// state machine. Webhooks arrive out-of-band and race any in-flight Confirm
// for the same payment reference; every branch here is idempotent.
func (s *Service) HandleGatewayEvent(ctx context.Context, event *payment.Event) error {
	s.logger.Debug("Gateway event received", map[string]any{
		"event_id":   event.ID,
		"event_type": event.Type,
	})

	switch event.Type {
	case payment.EventPaymentFailed:
		return s.onPaymentFailed(ctx, event)
	case payment.EventPaymentSucceeded:
		return s.onPaymentSucceeded(ctx, event)
	case payment.EventTransferPaid:
		return s.onTransferSettled(ctx, event, true)
	case payment.EventTransferFailed:
		return s.onTransferSettled(ctx, event, false)
	default:
		s.logger.Debug("Unhandled gateway event type", map[string]any{
			"event_type": event.Type,
		})
		return nil
	}
}

// onPaymentFailed releases the pending hold so the listing returns to the
// marketplace. Listings no longer pending are left alone.
func (s *Service) onPaymentFailed(ctx context.Context, event *payment.Event) error {
	if event.Intent == nil {
		return nil
	}
	listingID, err := metadataID(event.Intent.Metadata, payment.MetaListingID)
	if err != nil {
		s.logger.Warn("Payment failure event without listing metadata", map[string]any{
			"event_id":    event.ID,
			"payment_ref": event.Intent.ID,
		})
		return nil
	}

	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	if l.Status != entity.StatusPending {
		return nil
	}

	if err := s.listingRepo.Release(ctx, listingID); err != nil {
		return fmt.Errorf("failed to release listing after payment failure: %w", err)
	}
	s.logger.Info("Listing released after payment failure", map[string]any{
		"listing_id":  listingID,
		"payment_ref": event.Intent.ID,
	})
	return nil
}

// onPaymentSucceeded is advisory confirmation. The buyer's Confirm call
// creates the transaction; this path only verifies no settle went missing and
// never creates a duplicate for a reference Confirm already handled.
func (s *Service) onPaymentSucceeded(ctx context.Context, event *payment.Event) error {
	if event.Intent == nil {
		return nil
	}
	_, found, err := s.findExisting(ctx, event.Intent.ID)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Info("Payment succeeded, awaiting buyer confirmation", map[string]any{
			"payment_ref": event.Intent.ID,
		})
	}
	return nil
}

// onTransferSettled moves the payout sub-state to completed or failed
func (s *Service) onTransferSettled(ctx context.Context, event *payment.Event, paid bool) error {
	if event.Transfer == nil {
		return nil
	}
	txnID, err := metadataID(event.Transfer.Metadata, payment.MetaTransactionID)
	if err != nil {
		s.logger.Warn("Transfer event without transaction metadata", map[string]any{
			"event_id":    event.ID,
			"transfer_id": event.Transfer.ID,
		})
		return nil
	}

	txn, err := s.transactionRepo.GetByID(ctx, txnID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	// Redelivered events find the payout already settled; that's a no-op.
	if txn.Payout.Status == entity.PayoutCompleted || txn.Payout.Status == entity.PayoutFailed {
		return nil
	}

	if paid {
		err = txn.CompletePayout(s.timeProvider)
	} else {
		err = txn.FailPayout(s.timeProvider)
	}
	if err != nil {
		s.logger.Warn("Payout transition rejected by state machine", map[string]any{
			"transaction_id": txnID,
			"transfer_id":    event.Transfer.ID,
			"error":          err.Error(),
		})
		return nil
	}

	if err := s.transactionRepo.Update(ctx, txn); err != nil {
		return fmt.Errorf("failed to persist payout settlement: %w", err)
	}
	s.logger.Info("Seller payout settled", map[string]any{
		"transaction_id": txnID,
		"transfer_id":    event.Transfer.ID,
		"payout_status":  string(txn.Payout.Status),
	})
	return nil
}

// metadataID parses a numeric ID out of gateway metadata
func metadataID(md payment.Metadata, key string) (uint64, error) {
	raw, ok := md[key]
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing metadata key %q", key)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed metadata key %q: %w", key, err)
	}
	return id, nil
}
