package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	tport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// ListingStatus represents the marketplace lifecycle of a listing
type ListingStatus string

// Listing statuses. Transitions are monotonic except available<->pending:
// available -> pending -> sold, available|pending -> cancelled,
// pending -> available (payment failure). Sold and cancelled are terminal.
const (
	StatusAvailable ListingStatus = "available"
	StatusPending   ListingStatus = "pending"
	StatusSold      ListingStatus = "sold"
	StatusCancelled ListingStatus = "cancelled"
)

// ValidationStatus represents authenticity checks, independent of sale eligibility
type ValidationStatus string

// Validation statuses
const (
	ValidationPending  ValidationStatus = "pending"
	ValidationVerified ValidationStatus = "verified"
	ValidationRejected ValidationStatus = "rejected"
)

// TicketType enumerates the allowed ticket categories
type TicketType string

// Ticket types
const (
	TypeGeneralAdmission TicketType = "General Admission"
	TypeVIP              TicketType = "VIP"
	TypePremium          TicketType = "Premium"
	TypeEarlyBird        TicketType = "Early Bird"
	TypeStandard         TicketType = "Standard"
	TypeOther            TicketType = "Other"
)

// MaxDescriptionLength bounds the free-text description field
const MaxDescriptionLength = 500

// Listing represents one seller's offer of one ticket for resale
type Listing struct {
	ID       uint64 // Unique identifier for the listing
	SellerID uint64 // Owning seller, immutable after creation

	// Event descriptors, immutable after creation
	EventName     string
	EventDate     time.Time
	EventLocation string
	EventVenue    string

	// Ticket descriptors
	TicketType TicketType
	SeatNumber string
	Section    string
	Quantity   int

	// Pricing
	OriginalPrice decimal.Decimal // face value
	ResalePrice   decimal.Decimal // ask

	// Barcode is the unique external ticket identifier, immutable, used for
	// duplicate detection. Hidden from everyone but the seller in API reads.
	Barcode        string
	IsTransferable bool

	ValidationStatus ValidationStatus
	ValidationNotes  string
	Status           ListingStatus

	Description string
	Images      []string

	// TransactionID links the settled transaction once sold
	TransactionID *uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewListingParams carries the validated creation fields for a listing
type NewListingParams struct {
	SellerID       uint64
	EventName      string
	EventDate      time.Time
	EventLocation  string
	EventVenue     string
	TicketType     string
	SeatNumber     string
	Section        string
	Quantity       int
	OriginalPrice  decimal.Decimal
	ResalePrice    decimal.Decimal
	Barcode        string
	IsTransferable bool
	Description    string
	Images         []string
}

// NewListing creates a listing with field validation. Eligibility and barcode
// uniqueness are checked by the lifecycle manager, not here.
func NewListing(p NewListingParams, timeProvider tport.TimeProvider) (*Listing, error) {
	if p.SellerID == 0 {
		return nil, fmt.Errorf("%w: seller is required", errs.ErrValidationFailed)
	}
	if strings.TrimSpace(p.EventName) == "" {
		return nil, fmt.Errorf("%w: event name is required", errs.ErrValidationFailed)
	}
	if strings.TrimSpace(p.EventLocation) == "" {
		return nil, fmt.Errorf("%w: event location is required", errs.ErrValidationFailed)
	}
	if strings.TrimSpace(p.EventVenue) == "" {
		return nil, fmt.Errorf("%w: event venue is required", errs.ErrValidationFailed)
	}
	if strings.TrimSpace(p.Barcode) == "" {
		return nil, fmt.Errorf("%w: ticket barcode is required", errs.ErrValidationFailed)
	}
	if !isValidTicketType(p.TicketType) {
		return nil, fmt.Errorf("%w: invalid ticket type %q", errs.ErrValidationFailed, p.TicketType)
	}
	if p.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", errs.ErrValidationFailed)
	}
	if len(p.Description) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", errs.ErrValidationFailed, MaxDescriptionLength)
	}
	if err := ValidateAmount(p.OriginalPrice); err != nil {
		return nil, err
	}
	if err := ValidateAmount(p.ResalePrice); err != nil {
		return nil, err
	}

	now := timeProvider.Now()

	// Hard rule: the event must be strictly in the future
	if !p.EventDate.After(now) {
		return nil, errs.ErrInvalidEventDate
	}

	return &Listing{
		SellerID:         p.SellerID,
		EventName:        strings.TrimSpace(p.EventName),
		EventDate:        p.EventDate,
		EventLocation:    strings.TrimSpace(p.EventLocation),
		EventVenue:       strings.TrimSpace(p.EventVenue),
		TicketType:       TicketType(p.TicketType),
		SeatNumber:       strings.TrimSpace(p.SeatNumber),
		Section:          strings.TrimSpace(p.Section),
		Quantity:         p.Quantity,
		OriginalPrice:    p.OriginalPrice,
		ResalePrice:      p.ResalePrice,
		Barcode:          strings.TrimSpace(p.Barcode),
		IsTransferable:   p.IsTransferable,
		ValidationStatus: ValidationPending,
		Status:           StatusAvailable,
		Description:      strings.TrimSpace(p.Description),
		Images:           p.Images,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ListingUpdate is the bounded allow-list of mutable fields. Nil pointers
// leave the field untouched; everything else is immutable post-creation.
type ListingUpdate struct {
	ResalePrice *decimal.Decimal
	Description *string
	Images      []string
	Quantity    *int
}

// ApplyUpdate mutates the allow-listed fields. Fails with ErrInvalidState on
// sold or cancelled listings.
func (l *Listing) ApplyUpdate(u ListingUpdate, timeProvider tport.TimeProvider) error {
	if l.Status == StatusSold || l.Status == StatusCancelled {
		return fmt.Errorf("%w: cannot update a %s listing", errs.ErrInvalidState, l.Status)
	}

	if u.ResalePrice != nil {
		if err := ValidateAmount(*u.ResalePrice); err != nil {
			return err
		}
		l.ResalePrice = *u.ResalePrice
	}
	if u.Description != nil {
		if len(*u.Description) > MaxDescriptionLength {
			return fmt.Errorf("%w: description exceeds %d characters", errs.ErrValidationFailed, MaxDescriptionLength)
		}
		l.Description = strings.TrimSpace(*u.Description)
	}
	if u.Images != nil {
		l.Images = u.Images
	}
	if u.Quantity != nil {
		if *u.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", errs.ErrValidationFailed)
		}
		l.Quantity = *u.Quantity
	}

	l.UpdatedAt = timeProvider.Now()
	return nil
}

// Cancel transitions the listing to cancelled. Allowed from available and
// pending; fails with ErrInvalidState from sold. Cancelling an already
// cancelled listing is a no-op.
func (l *Listing) Cancel(timeProvider tport.TimeProvider) error {
	switch l.Status {
	case StatusSold:
		return fmt.Errorf("%w: cannot cancel a sold listing", errs.ErrInvalidState)
	case StatusCancelled:
		return nil
	}
	l.Status = StatusCancelled
	l.UpdatedAt = timeProvider.Now()
	return nil
}

// MarkSold transitions pending -> sold and attaches the settled transaction.
// The persistence layer enforces the same precondition atomically.
func (l *Listing) MarkSold(transactionID uint64, timeProvider tport.TimeProvider) error {
	if l.Status != StatusPending {
		return fmt.Errorf("%w: listing must be pending to finalize, is %s", errs.ErrInvalidState, l.Status)
	}
	l.Status = StatusSold
	l.TransactionID = &transactionID
	l.UpdatedAt = timeProvider.Now()
	return nil
}

// SetValidation updates the authenticity check result
func (l *Listing) SetValidation(status ValidationStatus, notes string, timeProvider tport.TimeProvider) error {
	if !isValidValidationStatus(string(status)) {
		return fmt.Errorf("%w: invalid validation status %q", errs.ErrValidationFailed, status)
	}
	l.ValidationStatus = status
	l.ValidationNotes = notes
	l.UpdatedAt = timeProvider.Now()
	return nil
}

// IsOwnedBy reports whether the given user is the listing's seller
func (l *Listing) IsOwnedBy(userID uint64) bool {
	return l.SellerID == userID
}

// Helper functions

// isValidTicketType validates if the ticket type is allowed
func isValidTicketType(t string) bool {
	switch TicketType(t) {
	case TypeGeneralAdmission, TypeVIP, TypePremium, TypeEarlyBird, TypeStandard, TypeOther:
		return true
	}
	return false
}

// isValidValidationStatus validates if the validation status is allowed
func isValidValidationStatus(s string) bool {
	switch ValidationStatus(s) {
	case ValidationPending, ValidationVerified, ValidationRejected:
		return true
	}
	return false
}
