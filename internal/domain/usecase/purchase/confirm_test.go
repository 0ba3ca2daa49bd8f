package purchase

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ctxKey string

func succeededIntent() *payment.Intent {
	return &payment.Intent{
		ID:          "pi_123",
		Status:      payment.IntentSucceeded,
		AmountMinor: 11000,
		Currency:    "usd",
		ChargeID:    "ch_1",
		Metadata: payment.Metadata{
			payment.MetaListingID:  "10",
			payment.MetaBuyerID:    "2",
			payment.MetaSellerID:   "1",
			payment.MetaPrice:      "100",
			payment.MetaServiceFee: "10",
		},
	}
}

func pendingListing() *entity.Listing {
	l := availableListing()
	l.Status = entity.StatusPending
	return l
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("settles the purchase and starts the payout", func(t *testing.T) {
		svc, m := newTestService()
		txCtx := context.WithValue(ctx, ctxKey("tx"), true)

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil)
		m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil)
		m.listingRepo.On("GetByID", ctx, uint64(10)).Return(pendingListing(), nil)

		m.uow.On("Begin", ctx).Return(txCtx, nil)
		m.uow.On("GetTransactionRepository", txCtx).Return(m.txnRepo)
		m.txnRepo.On("Create", txCtx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.Transaction).ID = 55
			}).
			Return(nil)
		m.uow.On("GetListingRepository", txCtx).Return(m.listingRepo)
		m.listingRepo.On("Finalize", txCtx, uint64(10), uint64(55)).Return(nil)
		m.uow.On("Commit", txCtx).Return(nil)

		m.userRepo.On("GetByID", ctx, uint64(1)).
			Return(&entity.User{ID: 1, PayoutAccountID: "acct_1"}, nil)
		m.gateway.On("CreateTransfer", mock.Anything, int64(10000), "usd", "acct_1", mock.Anything).
			Return(&payment.Transfer{ID: "tr_1"}, nil)
		m.txnRepo.On("Update", ctx, mock.Anything).Return(nil)

		txn, err := svc.Confirm(ctx, 2, "pi_123", 10)

		require.NoError(t, err)
		assert.Equal(t, uint64(55), txn.ID)
		assert.Equal(t, entity.TxnCompleted, txn.Status)
		assert.Equal(t, "pi_123", txn.PaymentIntentID)
		assert.Equal(t, entity.PayoutProcessing, txn.Payout.Status)
		assert.Equal(t, "tr_1", txn.Payout.TransferID)
		m.uow.AssertExpectations(t)
	})

	t.Run("repeated confirm returns the settled transaction without gateway calls", func(t *testing.T) {
		svc, m := newTestService()
		existing := &entity.Transaction{ID: 55, PaymentIntentID: "pi_123", Status: entity.TxnCompleted}

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(true, nil)
		m.txnRepo.On("GetByPaymentIntentID", ctx, "pi_123").Return(existing, nil)

		txn, err := svc.Confirm(ctx, 2, "pi_123", 10)

		require.NoError(t, err)
		assert.Equal(t, existing, txn)
		m.gateway.AssertNotCalled(t, "RetrieveIntent", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("intent not succeeded", func(t *testing.T) {
		for _, status := range []string{
			payment.IntentProcessing,
			payment.IntentRequiresPaymentMethod,
			payment.IntentCanceled,
		} {
			svc, m := newTestService()
			intent := succeededIntent()
			intent.Status = status

			m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil)
			m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(intent, nil)

			_, err := svc.Confirm(ctx, 2, "pi_123", 10)

			assert.ErrorIs(t, err, errs.ErrPaymentNotSucceeded, status)
			m.uow.AssertNotCalled(t, "Begin", mock.Anything)
		}
	})

	t.Run("metadata mismatch leaves the reservation alone", func(t *testing.T) {
		svc, m := newTestService()
		intent := succeededIntent()
		intent.Metadata[payment.MetaListingID] = "999"

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil)
		m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(intent, nil)

		_, err := svc.Confirm(ctx, 2, "pi_123", 10)

		assert.ErrorIs(t, err, errs.ErrVerificationMismatch)
		m.listingRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("claimed buyer mismatch is rejected", func(t *testing.T) {
		svc, m := newTestService()

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil)
		m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil)

		// intent is bound to buyer 2, caller claims to be 3
		_, err := svc.Confirm(ctx, 3, "pi_123", 10)

		assert.ErrorIs(t, err, errs.ErrVerificationMismatch)
	})

	t.Run("charged amount must reconcile with the metadata price", func(t *testing.T) {
		svc, m := newTestService()
		intent := succeededIntent()
		intent.AmountMinor = 9999

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil)
		m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(intent, nil)
		m.listingRepo.On("GetByID", ctx, uint64(10)).Return(pendingListing(), nil)

		_, err := svc.Confirm(ctx, 2, "pi_123", 10)

		assert.ErrorIs(t, err, errs.ErrVerificationMismatch)
		m.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("duplicate create race returns the winner's transaction", func(t *testing.T) {
		svc, m := newTestService()
		txCtx := context.WithValue(ctx, ctxKey("tx"), true)
		existing := &entity.Transaction{ID: 55, PaymentIntentID: "pi_123", Status: entity.TxnCompleted}

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil).Once()
		m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil)
		m.listingRepo.On("GetByID", ctx, uint64(10)).Return(pendingListing(), nil)

		m.uow.On("Begin", ctx).Return(txCtx, nil)
		m.uow.On("GetTransactionRepository", txCtx).Return(m.txnRepo)
		m.txnRepo.On("Create", txCtx, mock.Anything).Return(errs.ErrDuplicateTransaction)
		m.uow.On("Rollback", txCtx).Return(nil)

		// second idempotency lookup finds the concurrent winner
		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(true, nil).Once()
		m.txnRepo.On("GetByPaymentIntentID", ctx, "pi_123").Return(existing, nil)

		txn, err := svc.Confirm(ctx, 2, "pi_123", 10)

		require.NoError(t, err)
		assert.Equal(t, existing, txn)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("finalize failure rolls the settle back", func(t *testing.T) {
		svc, m := newTestService()
		txCtx := context.WithValue(ctx, ctxKey("tx"), true)

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil)
		m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil)
		m.listingRepo.On("GetByID", ctx, uint64(10)).Return(pendingListing(), nil)

		m.uow.On("Begin", ctx).Return(txCtx, nil)
		m.uow.On("GetTransactionRepository", txCtx).Return(m.txnRepo)
		m.txnRepo.On("Create", txCtx, mock.Anything).Return(nil)
		m.uow.On("GetListingRepository", txCtx).Return(m.listingRepo)
		m.listingRepo.On("Finalize", txCtx, uint64(10), mock.Anything).Return(errs.ErrInvalidState)
		m.uow.On("Rollback", txCtx).Return(nil)

		_, err := svc.Confirm(ctx, 2, "pi_123", 10)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		m.uow.AssertCalled(t, "Rollback", txCtx)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("payout stays pending when the seller has no payout account", func(t *testing.T) {
		svc, m := newTestService()
		txCtx := context.WithValue(ctx, ctxKey("tx"), true)

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil)
		m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil)
		m.listingRepo.On("GetByID", ctx, uint64(10)).Return(pendingListing(), nil)

		m.uow.On("Begin", ctx).Return(txCtx, nil)
		m.uow.On("GetTransactionRepository", txCtx).Return(m.txnRepo)
		m.txnRepo.On("Create", txCtx, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.Transaction).ID = 55
			}).
			Return(nil)
		m.uow.On("GetListingRepository", txCtx).Return(m.listingRepo)
		m.listingRepo.On("Finalize", txCtx, uint64(10), uint64(55)).Return(nil)
		m.uow.On("Commit", txCtx).Return(nil)

		m.userRepo.On("GetByID", ctx, uint64(1)).
			Return(&entity.User{ID: 1, PayoutAccountID: ""}, nil)

		txn, err := svc.Confirm(ctx, 2, "pi_123", 10)

		require.NoError(t, err)
		assert.Equal(t, entity.PayoutPending, txn.Payout.Status)
		m.gateway.AssertNotCalled(t, "CreateTransfer",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("payout transfer failure never unwinds the sale", func(t *testing.T) {
		svc, m := newTestService()
		txCtx := context.WithValue(ctx, ctxKey("tx"), true)

		m.txnRepo.On("ExistsByPaymentIntentID", ctx, "pi_123").Return(false, nil)
		m.gateway.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil)
		m.listingRepo.On("GetByID", ctx, uint64(10)).Return(pendingListing(), nil)

		m.uow.On("Begin", ctx).Return(txCtx, nil)
		m.uow.On("GetTransactionRepository", txCtx).Return(m.txnRepo)
		m.txnRepo.On("Create", txCtx, mock.Anything).Return(nil)
		m.uow.On("GetListingRepository", txCtx).Return(m.listingRepo)
		m.listingRepo.On("Finalize", txCtx, mock.Anything, mock.Anything).Return(nil)
		m.uow.On("Commit", txCtx).Return(nil)

		m.userRepo.On("GetByID", ctx, uint64(1)).
			Return(&entity.User{ID: 1, PayoutAccountID: "acct_1"}, nil)
		m.gateway.On("CreateTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errs.ErrGateway)

		txn, err := svc.Confirm(ctx, 2, "pi_123", 10)

		require.NoError(t, err)
		assert.Equal(t, entity.TxnCompleted, txn.Status)
		assert.Equal(t, entity.PayoutPending, txn.Payout.Status)
	})
}
