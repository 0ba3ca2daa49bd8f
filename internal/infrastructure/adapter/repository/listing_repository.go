package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// sortColumns whitelists the columns a search may sort by. Anything else
// falls back to creation time.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"eventDate":   "event_date",
	"resalePrice": "resale_price",
	"eventName":   "event_name",
}

// ListingRepository implements persistence.ListingRepository using GORM
type ListingRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *ErrorMapper
}

// NewListingRepository creates a new ListingRepository instance
func NewListingRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ListingRepository {
	return &ListingRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  NewErrorMapper(),
	}
}

// handleDatabaseError logs the failure and defers to the shared error mapper
func (r *ListingRepository) handleDatabaseError(operation string, err error, listingID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug("Listing not found", map[string]any{
			"listing_id": listingID,
		})
	} else {
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
			"listing_id": listingID,
			"error":      err.Error(),
		})
	}

	return r.errorMapper.MapListingNotFoundError(err)
}

// Create persists a new listing and assigns its ID
func (r *ListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	listingModel := model.ListingFromEntity(listing)

	result := r.db.WithContext(ctx).Create(listingModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating listing", result.Error, 0)
	}

	listing.ID = listingModel.ID

	r.logger.Info("Listing created", map[string]any{
		"listing_id": listing.ID,
		"seller_id":  listing.SellerID,
		"event":      listing.EventName,
	})
	return nil
}

// GetByID retrieves a listing by ID
func (r *ListingRepository) GetByID(ctx context.Context, id uint64) (*entity.Listing, error) {
	var listingModel model.Listing
	result := r.db.WithContext(ctx).First(&listingModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting listing", result.Error, id)
	}

	return listingModel.ToEntity(), nil
}

// Update persists mutations to an existing listing
func (r *ListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listingModel := model.ListingFromEntity(listing)

	result := r.db.WithContext(ctx).Save(listingModel)
	if result.Error != nil {
		return r.handleDatabaseError("updating listing", result.Error, listing.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrListingNotFound
	}

	return nil
}

// Search returns listings matching the filter plus the total match count
func (r *ListingRepository) Search(ctx context.Context, filter persistence.ListingFilter) ([]*entity.Listing, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Listing{})

	status := filter.Status
	if status == "" {
		status = string(entity.StatusAvailable)
	}
	query = query.Where("status = ?", status)

	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where(
			"event_name ILIKE ? OR event_location ILIKE ? OR event_venue ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Location != "" {
		query = query.Where("event_location ILIKE ?", "%"+strings.TrimSpace(filter.Location)+"%")
	}
	if filter.TicketType != "" {
		query = query.Where("ticket_type = ?", filter.TicketType)
	}
	if filter.MinPrice != nil {
		query = query.Where("resale_price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("resale_price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting listings", err, 0)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	query = query.Order(column + " " + direction)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)

	var models []model.Listing
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, r.handleDatabaseError("searching listings", err, 0)
	}

	listings := make([]*entity.Listing, 0, len(models))
	for i := range models {
		listings = append(listings, models[i].ToEntity())
	}
	return listings, total, nil
}

// ListBySeller returns a seller's listings, newest first
func (r *ListingRepository) ListBySeller(ctx context.Context, sellerID uint64, limit int) ([]*entity.Listing, error) {
	query := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []model.Listing
	if err := query.Find(&models).Error; err != nil {
		return nil, r.handleDatabaseError("listing by seller", err, 0)
	}

	listings := make([]*entity.Listing, 0, len(models))
	for i := range models {
		listings = append(listings, models[i].ToEntity())
	}
	return listings, nil
}

// CountBySellerAndStatus counts a seller's listings in the given status
func (r *ListingRepository) CountBySellerAndStatus(ctx context.Context, sellerID uint64, status entity.ListingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("seller_id = ? AND status = ?", sellerID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, r.handleDatabaseError("counting seller listings", err, 0)
	}
	return count, nil
}

// Reserve atomically transitions available -> pending. The conditional UPDATE
// is the concurrency control: of two racing buyers exactly one sees a row
// change, the other gets ErrNotAvailable.
func (r *ListingRepository) Reserve(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ? AND status = ?", id, string(entity.StatusAvailable)).
		Updates(map[string]any{
			"status":     string(entity.StatusPending),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("reserving listing", result.Error, id)
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing listing from a lost race
		var exists int64
		if err := r.db.WithContext(ctx).Model(&model.Listing{}).
			Where("id = ?", id).Count(&exists).Error; err != nil {
			return r.handleDatabaseError("reserving listing", err, id)
		}
		if exists == 0 {
			return errs.ErrListingNotFound
		}
		return errs.ErrNotAvailable
	}

	r.logger.Info("Listing reserved", map[string]any{
		"listing_id": id,
	})
	return nil
}

// Release atomically transitions pending -> available. Releasing a listing
// that is not pending is a no-op.
func (r *ListingRepository) Release(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(map[string]any{
			"status":     string(entity.StatusAvailable),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("releasing listing", result.Error, id)
	}
	if result.RowsAffected > 0 {
		r.logger.Info("Listing released", map[string]any{
			"listing_id": id,
		})
	}
	return nil
}

// Finalize atomically transitions pending -> sold and attaches the settled
// transaction reference
func (r *ListingRepository) Finalize(ctx context.Context, id uint64, transactionID uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(map[string]any{
			"status":         string(entity.StatusSold),
			"transaction_id": transactionID,
			"updated_at":     r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("finalizing listing", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: listing %d is not pending", errs.ErrInvalidState, id)
	}

	r.logger.Info("Listing finalized", map[string]any{
		"listing_id":     id,
		"transaction_id": transactionID,
	})
	return nil
}

// Cancel atomically transitions available or pending -> cancelled. The guard
// on the current status means a cancel racing a finalize can never overwrite
// a sale.
func (r *ListingRepository) Cancel(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ? AND status IN ?", id, []string{
			string(entity.StatusAvailable),
			string(entity.StatusPending),
		}).
		Updates(map[string]any{
			"status":     string(entity.StatusCancelled),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("cancelling listing", result.Error, id)
	}
	if result.RowsAffected == 0 {
		// Distinguish missing, already cancelled and sold
		var current model.Listing
		if err := r.db.WithContext(ctx).Select("status").First(&current, id).Error; err != nil {
			return r.handleDatabaseError("cancelling listing", err, id)
		}
		if current.Status == string(entity.StatusCancelled) {
			return nil
		}
		return fmt.Errorf("%w: cannot cancel a %s listing", errs.ErrInvalidState, current.Status)
	}

	r.logger.Info("Listing cancelled", map[string]any{
		"listing_id": id,
	})
	return nil
}
