package entity

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	tport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
)

// User represents an identity record. Listings and transactions reference the
// user; the user owns neither. Users are never hard-deleted.
type User struct {
	ID    uint64
	Email string

	// PasswordHash is empty for federated-identity-only accounts
	PasswordHash string

	FirstName   string
	LastName    string
	PhoneNumber string
	Verified    bool

	// PayoutAccountID is the seller's account reference at the payment
	// gateway. Empty until the seller connects one; payouts for sellers
	// without an account stay pending.
	PayoutAccountID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user with basic validation. The password hash is produced
// by the caller; an empty hash marks a federated-only account.
func NewUser(email, passwordHash, firstName, lastName, phoneNumber string, timeProvider tport.TimeProvider) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", errs.ErrValidationFailed)
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, fmt.Errorf("%w: first name is required", errs.ErrValidationFailed)
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, fmt.Errorf("%w: last name is required", errs.ErrValidationFailed)
	}

	now := timeProvider.Now()
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// HasPassword reports whether the account can log in with credentials,
// as opposed to federated login only
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// UpdateProfile mutates the editable profile fields. Empty strings leave
// names untouched; the phone number may be cleared.
func (u *User) UpdateProfile(firstName, lastName string, phoneNumber *string, timeProvider tport.TimeProvider) {
	if strings.TrimSpace(firstName) != "" {
		u.FirstName = strings.TrimSpace(firstName)
	}
	if strings.TrimSpace(lastName) != "" {
		u.LastName = strings.TrimSpace(lastName)
	}
	if phoneNumber != nil {
		u.PhoneNumber = strings.TrimSpace(*phoneNumber)
	}
	u.UpdatedAt = timeProvider.Now()
}
