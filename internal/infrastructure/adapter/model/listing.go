package model

import (
	"encoding/json"
	"time"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Listing represents the database model for ticket listings
type Listing struct {
	ID       uint64 `gorm:"primaryKey"`
	SellerID uint64 `gorm:"not null;index"`

	EventName     string    `gorm:"not null;size:255;index"`
	EventDate     time.Time `gorm:"not null;index"`
	EventLocation string    `gorm:"not null;size:255;index"`
	EventVenue    string    `gorm:"not null;size:255"`

	TicketType string `gorm:"not null;size:32;index"`
	SeatNumber string `gorm:"size:32"`
	Section    string `gorm:"size:64"`
	Quantity   int    `gorm:"not null;default:1"`

	OriginalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ResalePrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	Barcode        string `gorm:"uniqueIndex;not null;size:128"`
	IsTransferable bool   `gorm:"not null;default:false"`

	ValidationStatus string `gorm:"not null;size:16;default:pending"`
	ValidationNotes  string `gorm:"size:500"`
	Status           string `gorm:"not null;size:16;index;default:available"`

	Description string `gorm:"size:500"`
	Images      string `gorm:"type:text"` // JSON-encoded array of URLs

	TransactionID *uint64 `gorm:"index"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Listing
func (Listing) TableName() string {
	return "listings"
}

// ToEntity converts the database model to a domain entity
func (m *Listing) ToEntity() *entity.Listing {
	var images []string
	if m.Images != "" {
		// A corrupt images column degrades to no images, never to a read error
		_ = json.Unmarshal([]byte(m.Images), &images)
	}

	return &entity.Listing{
		ID:               m.ID,
		SellerID:         m.SellerID,
		EventName:        m.EventName,
		EventDate:        m.EventDate,
		EventLocation:    m.EventLocation,
		EventVenue:       m.EventVenue,
		TicketType:       entity.TicketType(m.TicketType),
		SeatNumber:       m.SeatNumber,
		Section:          m.Section,
		Quantity:         m.Quantity,
		OriginalPrice:    m.OriginalPrice,
		ResalePrice:      m.ResalePrice,
		Barcode:          m.Barcode,
		IsTransferable:   m.IsTransferable,
		ValidationStatus: entity.ValidationStatus(m.ValidationStatus),
		ValidationNotes:  m.ValidationNotes,
		Status:           entity.ListingStatus(m.Status),
		Description:      m.Description,
		Images:           images,
		TransactionID:    m.TransactionID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ListingFromEntity converts a domain entity to a database model
func ListingFromEntity(l *entity.Listing) *Listing {
	var images string
	if len(l.Images) > 0 {
		if encoded, err := json.Marshal(l.Images); err == nil {
			images = string(encoded)
		}
	}

	return &Listing{
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
		OriginalPrice:    l.OriginalPrice,
		ResalePrice:      l.ResalePrice,
		Barcode:          l.Barcode,
		IsTransferable:   l.IsTransferable,
		ValidationStatus: string(l.ValidationStatus),
		ValidationNotes:  l.ValidationNotes,
		Status:           string(l.Status),
		Description:      l.Description,
		Images:           images,
		TransactionID:    l.TransactionID,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
