package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *ErrorMapper
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  NewErrorMapper(),
	}
}

// handleDatabaseError logs the failure and defers to the shared error mapper
func (r *TransactionRepository) handleDatabaseError(operation string, err error, transactionID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug("Transaction not found", map[string]any{
			"transaction_id": transactionID,
		})
	} else {
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
	}

	return r.errorMapper.MapTransactionNotFoundError(err)
}

// Create saves a new transaction and assigns its ID. A duplicate payment
// reference surfaces as ErrDuplicateTransaction via the unique index.
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	txnModel := model.TransactionFromEntity(transaction)

	result := r.db.WithContext(ctx).Create(txnModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error, 0)
	}

	transaction.ID = txnModel.ID

	r.logger.Info("Transaction created", map[string]any{
		"transaction_id": transaction.ID,
		"listing_id":     transaction.ListingID,
		"buyer_id":       transaction.BuyerID,
		"payment_ref":    transaction.PaymentIntentID,
	})
	return nil
}

// Update persists status and payout mutations
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	txnModel := model.TransactionFromEntity(transaction)

	result := r.db.WithContext(ctx).Save(txnModel)
	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, transaction.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}

	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var txnModel model.Transaction
	result := r.db.WithContext(ctx).First(&txnModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction", result.Error, id)
	}

	return txnModel.ToEntity(), nil
}

// GetByPaymentIntentID retrieves a transaction by its gateway payment reference
func (r *TransactionRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	result := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", paymentIntentID).
		First(&txnModel)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction by payment reference", result.Error, 0)
	}

	return txnModel.ToEntity(), nil
}

// ExistsByPaymentIntentID checks for a transaction with the given payment reference
func (r *TransactionRepository) ExistsByPaymentIntentID(ctx context.Context, paymentIntentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("payment_intent_id = ?", paymentIntentID).
		Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking payment reference", err, 0)
	}
	return count > 0, nil
}

// ListByUser returns a user's transactions in the given role, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, role persistence.TransactionRole, limit int) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{})

	switch role {
	case persistence.RoleBuyer:
		query = query.Where("buyer_id = ?", userID)
	case persistence.RoleSeller:
		query = query.Where("seller_id = ?", userID)
	default:
		query = query.Where("buyer_id = ? OR seller_id = ?", userID, userID)
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []model.Transaction
	if err := query.Find(&models).Error; err != nil {
		return nil, r.handleDatabaseError("listing user transactions", err, 0)
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, models[i].ToEntity())
	}
	return transactions, nil
}

// CountBySellerAndStatus counts a seller's transactions in the given status
func (r *TransactionRepository) CountBySellerAndStatus(ctx context.Context, sellerID uint64, status entity.TransactionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("seller_id = ? AND status = ?", sellerID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, r.handleDatabaseError("counting seller transactions", err, 0)
	}
	return count, nil
}
