package dto

import (
	"time"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
)

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

// LoginRequest is the payload for credentialed login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the editable profile fields. A null phone
// number leaves it untouched.
type UpdateProfileRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
}

// UserResponse is the public view of a user. The password hash never leaves
// the server.
type UserResponse struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthResponse carries the signed token plus the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// DashboardResponse aggregates a user's marketplace activity
type DashboardResponse struct {
	Listings  []ListingResponse     `json:"listings"`
	Purchases []TransactionResponse `json:"purchases"`
	Sales     []TransactionResponse `json:"sales"`
	Stats     DashboardStats        `json:"stats"`
}

// DashboardStats summarizes the dashboard counters
type DashboardStats struct {
	ActiveListings int64 `json:"activeListings"`
	TotalSales     int64 `json:"totalSales"`
	TotalPurchases int64 `json:"totalPurchases"`
}

// ToUserResponse converts a user entity to its API representation
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
	}
}
