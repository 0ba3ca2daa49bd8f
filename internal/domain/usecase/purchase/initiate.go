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

// InitiateResult is returned to the buyer so the client can complete the
// charge against the gateway
type InitiateResult struct {
	PaymentIntentID string
	ClientSecret    string
	Amount          decimal.Decimal // ticket price
	ServiceFee      decimal.Decimal
	Total           decimal.Decimal
}

// Initiate starts a purchase: it derives the fee breakdown server-side, opens
// a payment intent at the gateway and places the pending hold on the listing.
// No transaction record exists yet; that happens only on Confirm.
func (s *Service) Initiate(ctx context.Context, buyerID, listingID uint64) (*InitiateResult, error) {
	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if l.Status != entity.StatusAvailable {
		return nil, errs.NewPurchaseError("", listingID, buyerID, "listing not available", errs.ErrNotAvailable)
	}
	if l.IsOwnedBy(buyerID) {
		return nil, errs.NewPurchaseError("", listingID, buyerID, "buyer is the seller", errs.ErrSelfPurchase)
	}

	// totalAmount is always recomputed here, never taken from the client
	fees := entity.ComputeFees(l.ResalePrice, s.policy.ServiceFeeRate)

	gctx, cancel := s.gatewayCtx(ctx)
	defer cancel()

	intent, err := s.gateway.CreateIntent(gctx, entity.ToMinorUnits(fees.Total), s.currency, payment.Metadata{
		payment.MetaListingID:  strconv.FormatUint(listingID, 10),
		payment.MetaBuyerID:    strconv.FormatUint(buyerID, 10),
		payment.MetaSellerID:   strconv.FormatUint(l.SellerID, 10),
		payment.MetaPrice:      fees.Amount.String(),
		payment.MetaServiceFee: fees.ServiceFee.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	// The conditional update is the authoritative availability check: under
	// concurrent purchase attempts exactly one reservation wins.
	if err := s.listingRepo.Reserve(ctx, listingID); err != nil {
		s.logger.Warn("Reservation lost after intent creation", map[string]any{
			"listing_id":  listingID,
			"buyer_id":    buyerID,
			"payment_ref": intent.ID,
			"error":       err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Purchase initiated", map[string]any{
		"listing_id":  listingID,
		"buyer_id":    buyerID,
		"payment_ref": intent.ID,
		"total":       fees.Total.String(),
	})

	return &InitiateResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          fees.Amount,
		ServiceFee:      fees.ServiceFee,
		Total:           fees.Total,
	}, nil
}
