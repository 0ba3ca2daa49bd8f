package repository

import (
	"errors"
	"testing"

	domainErr "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, mapper.MapError(nil, "create"))
	})

	t.Run("record not found", func(t *testing.T) {
		err := mapper.MapError(gorm.ErrRecordNotFound, "get")
		assert.ErrorIs(t, err, domainErr.ErrNotFound)
	})

	t.Run("duplicate key by constraint name", func(t *testing.T) {
		testCases := []struct {
			name     string
			dbErr    string
			expected error
		}{
			{
				"barcode",
				`duplicate key value violates unique constraint "idx_listings_barcode"`,
				domainErr.ErrDuplicateBarcode,
			},
			{
				"payment intent",
				`duplicate key value violates unique constraint "idx_transactions_payment_intent_id"`,
				domainErr.ErrDuplicateTransaction,
			},
			{
				"email",
				`duplicate key value violates unique constraint "idx_users_email"`,
				domainErr.ErrDuplicateEmail,
			},
			{
				"mysql style duplicate",
				"Duplicate entry 'jane@example.com' for key 'idx_users_email'",
				domainErr.ErrDuplicateEmail,
			},
			{
				"unknown constraint",
				`duplicate key value violates unique constraint "idx_something_else"`,
				domainErr.ErrValidationFailed,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				err := mapper.MapError(errors.New(tc.dbErr), "create")
				assert.ErrorIs(t, err, tc.expected)
			})
		}
	})

	t.Run("connection failures", func(t *testing.T) {
		for _, msg := range []string{
			"dial tcp 127.0.0.1:5432: connection refused",
			"read tcp: connection reset by peer",
			"write: broken pipe",
			"unexpected EOF",
			"dial tcp: network is unreachable",
			"the database server closed the connection",
		} {
			err := mapper.MapError(errors.New(msg), "get")
			assert.ErrorIs(t, err, domainErr.ErrDatabaseConnection, msg)
		}
	})

	t.Run("timeouts", func(t *testing.T) {
		err := mapper.MapError(errors.New("context deadline exceeded"), "search")
		assert.ErrorIs(t, err, domainErr.ErrDatabaseConnection)
	})

	t.Run("anything else is internal", func(t *testing.T) {
		err := mapper.MapError(errors.New("syntax error at or near"), "get")
		assert.ErrorIs(t, err, domainErr.ErrInternalServer)
	})
}

func TestMapEntityNotFoundError(t *testing.T) {
	mapper := NewErrorMapper()

	testCases := []struct {
		entity   EntityType
		expected error
	}{
		{EntityTypeUser, domainErr.ErrUserNotFound},
		{EntityTypeListing, domainErr.ErrListingNotFound},
		{EntityTypeTransaction, domainErr.ErrTransactionNotFound},
		{EntityType("widget"), domainErr.ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(string(tc.entity), func(t *testing.T) {
			err := mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, tc.entity)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	t.Run("non not-found errors defer to MapError", func(t *testing.T) {
		err := mapper.MapListingNotFoundError(errors.New("connection refused"))
		assert.ErrorIs(t, err, domainErr.ErrDatabaseConnection)

		err = mapper.MapUserNotFoundError(errors.New(`duplicate key value violates unique constraint "idx_users_email"`))
		assert.ErrorIs(t, err, domainErr.ErrDuplicateEmail)

		err = mapper.MapTransactionNotFoundError(errors.New("timeout"))
		assert.ErrorIs(t, err, domainErr.ErrDatabaseConnection)
	})
}
