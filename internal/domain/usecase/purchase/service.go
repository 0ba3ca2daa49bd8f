package purchase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/payment"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/persistence"
)

// DefaultGatewayTimeout bounds calls to the payment gateway. A timeout is a
// retryable failure, never treated as success.
const DefaultGatewayTimeout = 15 * time.Second

// Service is the transaction/escrow state machine. It coordinates the payment
// gateway, the listing reservation and the settled transaction record.
//
// Transaction states: pending -> completed | failed, completed -> refunded.
// The seller payout sub-state (pending -> processing -> completed | failed)
// runs on its own clock, driven by gateway transfer events.
type Service struct {
	uow             persistence.UnitOfWork
	listingRepo     persistence.ListingRepository
	transactionRepo persistence.TransactionRepository
	userRepo        persistence.UserRepository
	gateway         payment.Gateway
	policy          entity.ResalePolicy
	currency        string
	gatewayTimeout  time.Duration
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewService creates the purchase service
func NewService(
	uow persistence.UnitOfWork,
	listingRepo persistence.ListingRepository,
	transactionRepo persistence.TransactionRepository,
	userRepo persistence.UserRepository,
	gateway payment.Gateway,
	policy entity.ResalePolicy,
	currency string,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		uow:             uow,
		listingRepo:     listingRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		gateway:         gateway,
		policy:          policy,
		currency:        currency,
		gatewayTimeout:  DefaultGatewayTimeout,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// WithGatewayTimeout overrides the bound on payment gateway calls
func (s *Service) WithGatewayTimeout(d time.Duration) *Service {
	if d > 0 {
		s.gatewayTimeout = d
	}
	return s
}

// ListTransactions returns a user's transaction history in the given role
func (s *Service) ListTransactions(ctx context.Context, userID uint64, role persistence.TransactionRole, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	switch role {
	case persistence.RoleBuyer, persistence.RoleSeller, persistence.RoleAny:
	default:
		role = persistence.RoleAny
	}
	return s.transactionRepo.ListByUser(ctx, userID, role, limit)
}

// Refund transitions a completed transaction to refunded. Only the buyer may
// request it. Payout reversal is handled at the gateway, not here.
func (s *Service) Refund(ctx context.Context, transactionID, requesterID uint64) (*entity.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.BuyerID != requesterID {
		return nil, errs.ErrUnauthorized
	}
	if err := txn.Refund(s.timeProvider); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Update(ctx, txn); err != nil {
		return nil, err
	}
	s.logger.Info("Transaction refunded", map[string]any{
		"transaction_id": transactionID,
		"payment_ref":    txn.PaymentIntentID,
	})
	return txn, nil
}

// gatewayCtx derives a bounded context for a gateway call
func (s *Service) gatewayCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return s.timeProvider.WithTimeout(ctx, s.gatewayTimeout)
}
