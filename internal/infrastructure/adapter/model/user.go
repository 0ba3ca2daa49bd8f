package model

import (
	"time"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
)

// User represents the database model for users
type User struct {
	ID              uint64    `gorm:"primaryKey"`
	Email           string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash    string    `gorm:"size:255"` // empty for federated-only accounts
	FirstName       string    `gorm:"not null;size:100"`
	LastName        string    `gorm:"not null;size:100"`
	PhoneNumber     string    `gorm:"size:32"`
	Verified        bool      `gorm:"not null;default:false"`
	PayoutAccountID string    `gorm:"size:255"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// ToEntity converts the database model to a domain entity
func (m *User) ToEntity() *entity.User {
	return &entity.User{
		ID:              m.ID,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		PhoneNumber:     m.PhoneNumber,
		Verified:        m.Verified,
		PayoutAccountID: m.PayoutAccountID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// UserFromEntity converts a domain entity to a database model
func UserFromEntity(u *entity.User) *User {
	return &User{
		ID:              u.ID,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		PhoneNumber:     u.PhoneNumber,
		Verified:        u.Verified,
		PayoutAccountID: u.PayoutAccountID,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
