package listing

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/persistence"
)

// Service owns the listing lifecycle: creation (with server-side eligibility),
// bounded updates, cancellation, and the reservation transitions driven by the
// purchase flow.
type Service struct {
	listingRepo  persistence.ListingRepository
	policy       entity.ResalePolicy
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a listing service
func NewService(
	listingRepo persistence.ListingRepository,
	policy entity.ResalePolicy,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		listingRepo:  listingRepo,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Policy returns the marketplace policy the service was configured with
func (s *Service) Policy() entity.ResalePolicy {
	return s.policy
}

// Create validates fields, re-evaluates eligibility server-side and persists
// the listing as available. Ineligible listings are rejected at creation; the
// returned EligibilityError carries the three contributing checks.
func (s *Service) Create(ctx context.Context, params entity.NewListingParams) (*entity.Listing, error) {
	l, err := entity.NewListing(params, s.timeProvider)
	if err != nil {
		return nil, err
	}

	// Client-computed eligibility is advisory only; this is the authoritative check.
	result := entity.EvaluateEligibility(entity.EligibilityInput{
		IsTransferable: l.IsTransferable,
		EventTime:      l.EventDate,
		Now:            s.timeProvider.Now(),
		Price:          l.ResalePrice,
		FaceValue:      l.OriginalPrice,
	}, s.policy)

	if !result.Eligible {
		eligErr := &errs.EligibilityError{
			TransferableOk: result.TransferableOk,
			DateOk:         result.DateOk,
			PriceOk:        result.PriceOk,
		}
		s.logger.Info("Listing rejected by eligibility checks", eligErr.LogFields())
		return nil, eligErr
	}

	if err := s.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("Listing created", map[string]any{
		"listing_id": l.ID,
		"seller_id":  l.SellerID,
		"event_name": l.EventName,
		"price":      l.ResalePrice.String(),
	})
	return l, nil
}

// Get retrieves a single listing
func (s *Service) Get(ctx context.Context, id uint64) (*entity.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

// Search returns listings matching the filter plus a total count
func (s *Service) Search(ctx context.Context, filter persistence.ListingFilter) ([]*entity.Listing, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	return s.listingRepo.Search(ctx, filter)
}

// Update mutates the bounded allow-list of fields (price, description, images,
// quantity). Only the owning seller may update, and never after the sale.
func (s *Service) Update(ctx context.Context, id, requesterID uint64, update entity.ListingUpdate) (*entity.Listing, error) {
	l, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(requesterID) {
		return nil, errs.NewListingError(id, requesterID, "update by non-owner", errs.ErrUnauthorized)
	}
	if err := l.ApplyUpdate(update, s.timeProvider); err != nil {
		return nil, err
	}
	if err := s.listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Cancel soft-cancels a listing. Terminal; sold listings cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, id, requesterID uint64) error {
	l, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !l.IsOwnedBy(requesterID) {
		return errs.NewListingError(id, requesterID, "cancel by non-owner", errs.ErrUnauthorized)
	}
	if err := l.Cancel(s.timeProvider); err != nil {
		return err
	}
	// The conditional transition guards against a sale landing between the
	// ownership check and the cancel; a lost race surfaces as ErrInvalidState.
	if err := s.listingRepo.Cancel(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Listing cancelled", map[string]any{
		"listing_id": id,
		"seller_id":  requesterID,
	})
	return nil
}

// SetValidation updates the authenticity check result of a listing
func (s *Service) SetValidation(ctx context.Context, id uint64, status entity.ValidationStatus, notes string) (*entity.Listing, error) {
	l, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.SetValidation(status, notes, s.timeProvider); err != nil {
		return nil, err
	}
	if err := s.listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Reserve places the pending hold that starts a purchase. The repository
// performs the conditional transition atomically: under concurrent attempts
// at most one caller succeeds, the rest observe ErrNotAvailable.
func (s *Service) Reserve(ctx context.Context, id uint64) error {
	if err := s.listingRepo.Reserve(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("Listing reserved", map[string]any{"listing_id": id})
	return nil
}

// Release returns a reserved listing to the marketplace after a payment
// failure or cancellation. Safe to call when already available.
func (s *Service) Release(ctx context.Context, id uint64) error {
	if err := s.listingRepo.Release(ctx, id); err != nil {
		return fmt.Errorf("failed to release listing %d: %w", id, err)
	}
	s.logger.Info("Listing released back to marketplace", map[string]any{"listing_id": id})
	return nil
}
