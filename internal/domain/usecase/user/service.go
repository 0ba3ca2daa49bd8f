package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/persistence"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length on registration
const MinPasswordLength = 6

// Service handles registration, login and profile/dashboard reads
type Service struct {
	userRepo        persistence.UserRepository
	listingRepo     persistence.ListingRepository
	transactionRepo persistence.TransactionRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewService creates a user service
func NewService(
	userRepo persistence.UserRepository,
	listingRepo persistence.ListingRepository,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:        userRepo,
		listingRepo:     listingRepo,
		transactionRepo: transactionRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Register creates a new credentialed account
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName, phoneNumber string) (*entity.User, error) {
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidationFailed, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password", errs.ErrInternalServer)
	}

	u, err := entity.NewUser(email, string(hash), firstName, lastName, phoneNumber, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id": u.ID,
		"email":   u.Email,
	})
	return u, nil
}

// Login verifies credentials and returns the user. Federated-only accounts
// (no password hash) cannot log in with credentials.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.HasPassword() {
		return nil, fmt.Errorf("%w: account uses federated login", errs.ErrInvalidCredentials)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return u, nil
}

// GetProfile returns a user's identity record
func (s *Service) GetProfile(ctx context.Context, userID uint64) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile mutates the editable profile fields
func (s *Service) UpdateProfile(ctx context.Context, userID uint64, firstName, lastName string, phoneNumber *string) (*entity.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.UpdateProfile(firstName, lastName, phoneNumber, s.timeProvider)
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DashboardStats summarizes a user's marketplace activity
type DashboardStats struct {
	ActiveListings int64
	TotalSales     int64
	TotalPurchases int64
}

// Dashboard aggregates a user's recent listings, purchases and sales
type Dashboard struct {
	Listings  []*entity.Listing
	Purchases []*entity.Transaction
	Sales     []*entity.Transaction
	Stats     DashboardStats
}

// GetDashboard loads the dashboard view for a user
func (s *Service) GetDashboard(ctx context.Context, userID uint64) (*Dashboard, error) {
	const recentLimit = 10

	listings, err := s.listingRepo.ListBySeller(ctx, userID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	purchases, err := s.transactionRepo.ListByUser(ctx, userID, persistence.RoleBuyer, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}
	sales, err := s.transactionRepo.ListByUser(ctx, userID, persistence.RoleSeller, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	active, err := s.listingRepo.CountBySellerAndStatus(ctx, userID, entity.StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to count active listings: %w", err)
	}
	totalSales, err := s.transactionRepo.CountBySellerAndStatus(ctx, userID, entity.TxnCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	return &Dashboard{
		Listings:  listings,
		Purchases: purchases,
		Sales:     sales,
		Stats: DashboardStats{
			ActiveListings: active,
			TotalSales:     totalSales,
			TotalPurchases: int64(len(purchases)),
		},
	}, nil
}
