package dto

import (
	"time"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateListingRequest is the payload for listing a ticket. Decimal fields
// accept both JSON numbers and strings.
type CreateListingRequest struct {
	EventName      string          `json:"eventName" binding:"required"`
	EventDate      time.Time       `json:"eventDate" binding:"required"`
	EventLocation  string          `json:"eventLocation" binding:"required"`
	EventVenue     string          `json:"eventVenue" binding:"required"`
	TicketType     string          `json:"ticketType" binding:"required"`
	SeatNumber     string          `json:"seatNumber"`
	Section        string          `json:"section"`
	Quantity       int             `json:"quantity"`
	OriginalPrice  decimal.Decimal `json:"originalPrice" binding:"required"`
	ResalePrice    decimal.Decimal `json:"resalePrice" binding:"required"`
	Barcode        string          `json:"barcode" binding:"required"`
	IsTransferable bool            `json:"isTransferable"`
	Description    string          `json:"description"`
	Images         []string        `json:"images"`
}

// UpdateListingRequest carries the mutable listing fields. Absent fields are
// left untouched.
type UpdateListingRequest struct {
	ResalePrice *decimal.Decimal `json:"resalePrice"`
	Description *string          `json:"description"`
	Images      []string         `json:"images"`
	Quantity    *int             `json:"quantity"`
}

// ValidationRequest sets the authenticity check result on a listing
type ValidationRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ListingResponse is the API view of a listing. The barcode is included only
// for the owning seller.
type ListingResponse struct {
	ID               uint64    `json:"id"`
	SellerID         uint64    `json:"sellerId"`
	EventName        string    `json:"eventName"`
	EventDate        time.Time `json:"eventDate"`
	EventLocation    string    `json:"eventLocation"`
	EventVenue       string    `json:"eventVenue"`
	TicketType       string    `json:"ticketType"`
	SeatNumber       string    `json:"seatNumber,omitempty"`
	Section          string    `json:"section,omitempty"`
	Quantity         int       `json:"quantity"`
	OriginalPrice    string    `json:"originalPrice"`
	ResalePrice      string    `json:"resalePrice"`
	Barcode          string    `json:"barcode,omitempty"`
	IsTransferable   bool      `json:"isTransferable"`
	ValidationStatus string    `json:"validationStatus"`
	Status           string    `json:"status"`
	Description      string    `json:"description,omitempty"`
	Images           []string  `json:"images,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SearchListingsResponse is a paginated search result
type SearchListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// ToListingResponse converts a listing entity to its API representation.
// The barcode is stripped unless the viewer owns the listing.
func ToListingResponse(l *entity.Listing, viewerID uint64) ListingResponse {
	resp := ListingResponse{
		ID:               l.ID,
		SellerID:         l.SellerID,
		EventName:        l.EventName,
		EventDate:        l.EventDate,
		EventLocation:    l.EventLocation,
		EventVenue:       l.EventVenue,
		TicketType:       string(l.TicketType),
		SeatNumber:       l.SeatNumber,
		Section:          l.Section,
		Quantity:         l.Quantity,
		OriginalPrice:    l.OriginalPrice.StringFixed(2),
		ResalePrice:      l.ResalePrice.StringFixed(2),
		IsTransferable:   l.IsTransferable,
		ValidationStatus: string(l.ValidationStatus),
		Status:           string(l.Status),
		Description:      l.Description,
		Images:           l.Images,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if l.IsOwnedBy(viewerID) {
		resp.Barcode = l.Barcode
	}
	return resp
}

// ToListingResponses converts a slice of listing entities
func ToListingResponses(listings []*entity.Listing, viewerID uint64) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, ToListingResponse(l, viewerID))
	}
	return out
}
