package user

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/persistence"
	coremocks "github.com/amirhossein-jamali/ticket-marketplace/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/ticket-marketplace/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type serviceMocks struct {
	userRepo    *persistencemocks.MockUserRepository
	listingRepo *persistencemocks.MockListingRepository
	txnRepo     *persistencemocks.MockTransactionRepository
}

func newTestService() (*Service, *serviceMocks) {
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	logger := new(coremocks.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()

	m := &serviceMocks{
		userRepo:    new(persistencemocks.MockUserRepository),
		listingRepo: new(persistencemocks.MockListingRepository),
		txnRepo:     new(persistencemocks.MockTransactionRepository),
	}
	svc := NewService(m.userRepo, m.listingRepo, m.txnRepo, mockTime, logger)
	return svc, m
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		svc, m := newTestService()
		m.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.User).ID = 7
			}).
			Return(nil)

		u, err := svc.Register(ctx, "Jane@Example.com", "s3cretpw", "Jane", "Doe", "")

		require.NoError(t, err)
		assert.Equal(t, uint64(7), u.ID)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.NotEqual(t, "s3cretpw", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cretpw")))
	})

	t.Run("short password is rejected before hashing", func(t *testing.T) {
		svc, m := newTestService()

		_, err := svc.Register(ctx, "jane@example.com", "12345", "Jane", "Doe", "")

		assert.ErrorIs(t, err, errs.ErrValidationFailed)
		m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email surfaces from the repository", func(t *testing.T) {
		svc, m := newTestService()
		m.userRepo.On("Create", ctx, mock.Anything).Return(errs.ErrDuplicateEmail)

		_, err := svc.Register(ctx, "jane@example.com", "s3cretpw", "Jane", "Doe", "")

		assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpw"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := func() *entity.User {
		return &entity.User{ID: 7, Email: "jane@example.com", PasswordHash: string(hash)}
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, m := newTestService()
		m.userRepo.On("GetByEmail", ctx, "jane@example.com").Return(storedUser(), nil)

		u, err := svc.Login(ctx, "  Jane@Example.COM ", "s3cretpw")

		require.NoError(t, err)
		assert.Equal(t, uint64(7), u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, m := newTestService()
		m.userRepo.On("GetByEmail", ctx, "jane@example.com").Return(storedUser(), nil)

		_, err := svc.Login(ctx, "jane@example.com", "wrong")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a wrong password", func(t *testing.T) {
		svc, m := newTestService()
		m.userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, errs.ErrUserNotFound)

		_, err := svc.Login(ctx, "nobody@example.com", "s3cretpw")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("federated account cannot use credential login", func(t *testing.T) {
		svc, m := newTestService()
		u := storedUser()
		u.PasswordHash = ""
		m.userRepo.On("GetByEmail", ctx, "jane@example.com").Return(u, nil)

		_, err := svc.Login(ctx, "jane@example.com", "s3cretpw")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates and persists", func(t *testing.T) {
		svc, m := newTestService()
		u := &entity.User{ID: 7, FirstName: "Jane", LastName: "Doe", PhoneNumber: "+49151"}
		m.userRepo.On("GetByID", ctx, uint64(7)).Return(u, nil)
		m.userRepo.On("Update", ctx, u).Return(nil)

		empty := ""
		updated, err := svc.UpdateProfile(ctx, 7, "Janet", "", &empty)

		require.NoError(t, err)
		assert.Equal(t, "Janet", updated.FirstName)
		assert.Equal(t, "Doe", updated.LastName)
		assert.Equal(t, "", updated.PhoneNumber)
	})

	t.Run("missing user", func(t *testing.T) {
		svc, m := newTestService()
		m.userRepo.On("GetByID", ctx, uint64(7)).Return(nil, errs.ErrUserNotFound)

		_, err := svc.UpdateProfile(ctx, 7, "Janet", "", nil)

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates listings, purchases, sales and stats", func(t *testing.T) {
		svc, m := newTestService()

		listings := []*entity.Listing{{ID: 1}, {ID: 2}}
		purchases := []*entity.Transaction{{ID: 10}}
		sales := []*entity.Transaction{{ID: 11}, {ID: 12}}

		m.listingRepo.On("ListBySeller", ctx, uint64(7), 10).Return(listings, nil)
		m.txnRepo.On("ListByUser", ctx, uint64(7), persistence.RoleBuyer, 10).Return(purchases, nil)
		m.txnRepo.On("ListByUser", ctx, uint64(7), persistence.RoleSeller, 10).Return(sales, nil)
		m.listingRepo.On("CountBySellerAndStatus", ctx, uint64(7), entity.StatusAvailable).Return(int64(2), nil)
		m.txnRepo.On("CountBySellerAndStatus", ctx, uint64(7), entity.TxnCompleted).Return(int64(5), nil)

		dash, err := svc.GetDashboard(ctx, 7)

		require.NoError(t, err)
		assert.Len(t, dash.Listings, 2)
		assert.Len(t, dash.Purchases, 1)
		assert.Len(t, dash.Sales, 2)
		assert.Equal(t, int64(2), dash.Stats.ActiveListings)
		assert.Equal(t, int64(5), dash.Stats.TotalSales)
		assert.Equal(t, int64(1), dash.Stats.TotalPurchases)
	})

	t.Run("listing load failure aborts", func(t *testing.T) {
		svc, m := newTestService()
		m.listingRepo.On("ListBySeller", ctx, uint64(7), 10).Return(nil, errs.ErrDatabaseConnection)

		_, err := svc.GetDashboard(ctx, 7)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}
