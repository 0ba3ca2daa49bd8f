package persistence

import (
	"context"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ListingFilter describes a marketplace search over available listings
type ListingFilter struct {
	// Search matches event name, location and venue
	Search   string
	Location string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal

	TicketType string

	// Status restricts results; empty means available only
	Status string

	// SortBy is a whitelisted column name; Descending controls order
	SortBy     string
	Descending bool

	Page  int
	Limit int
}

// ListingRepository defines persistence for listings. The three conditional
// transitions (Reserve, Release, Finalize) must be implemented as atomic
// compare-and-set updates at the storage layer, never as application-level
// read-modify-write: two concurrent purchases of the same listing race on the
// status column and exactly one may win.
type ListingRepository interface {
	// Create persists a new listing and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateBarcode: If a listing with the same barcode already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, listing *entity.Listing) error

	// GetByID retrieves a listing by ID
	//
	// Possible errors:
	// - ErrListingNotFound: If listing with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Listing, error)

	// Update persists mutations to an existing listing
	//
	// Possible errors:
	// - ErrListingNotFound: If listing doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, listing *entity.Listing) error

	// Search returns listings matching the filter plus the total match count
	// for pagination
	Search(ctx context.Context, filter ListingFilter) ([]*entity.Listing, int64, error)

	// ListBySeller returns a seller's listings, newest first
	ListBySeller(ctx context.Context, sellerID uint64, limit int) ([]*entity.Listing, error)

	// CountBySellerAndStatus counts a seller's listings in the given status
	CountBySellerAndStatus(ctx context.Context, sellerID uint64, status entity.ListingStatus) (int64, error)

	// Reserve atomically transitions available -> pending. Under concurrent
	// reservation attempts at most one caller succeeds.
	//
	// Possible errors:
	// - ErrNotAvailable: If the listing is not currently available
	// - ErrListingNotFound: If listing doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Reserve(ctx context.Context, id uint64) error

	// Release atomically transitions pending -> available. Releasing a listing
	// that is already available is a no-op.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Release(ctx context.Context, id uint64) error

	// Finalize atomically transitions pending -> sold and attaches the
	// settled transaction reference.
	//
	// Possible errors:
	// - ErrInvalidState: If the listing is not pending
	// - ErrDatabaseConnection: If database connection fails
	Finalize(ctx context.Context, id uint64, transactionID uint64) error

	// Cancel atomically transitions available or pending -> cancelled.
	// Cancelling an already cancelled listing is a no-op; a concurrent sale
	// that lands first wins.
	//
	// Possible errors:
	// - ErrInvalidState: If the listing has been sold
	// - ErrListingNotFound: If listing doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Cancel(ctx context.Context, id uint64) error
}
