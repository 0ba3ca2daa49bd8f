package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/ticket-marketplace/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("valid user", func(t *testing.T) {
		user, err := NewUser("Jane.Doe@Example.COM", "hash", "Jane", "Doe", "+4915112345678", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "jane.doe@example.com", user.Email)
		assert.Equal(t, "Jane", user.FirstName)
		assert.Equal(t, "Doe", user.LastName)
		assert.False(t, user.Verified)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("invalid email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "missing@domain@twice"} {
			user, err := NewUser(email, "hash", "Jane", "Doe", "", mockTime)

			assert.ErrorIs(t, err, errs.ErrValidationFailed, email)
			assert.Nil(t, user)
		}
	})

	t.Run("missing names", func(t *testing.T) {
		_, err := NewUser("jane@example.com", "hash", " ", "Doe", "", mockTime)
		assert.ErrorIs(t, err, errs.ErrValidationFailed)

		_, err = NewUser("jane@example.com", "hash", "Jane", "", "", mockTime)
		assert.ErrorIs(t, err, errs.ErrValidationFailed)
	})

	t.Run("federated account without password", func(t *testing.T) {
		user, err := NewUser("jane@example.com", "", "Jane", "Doe", "", mockTime)

		require.NoError(t, err)
		assert.False(t, user.HasPassword())
	})
}

func TestUserUpdateProfile(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(time.Hour)

	newUser := func() *User {
		mockTime := new(coremocks.MockTimeProvider)
		mockTime.On("Now").Return(createdAt)
		u, err := NewUser("jane@example.com", "hash", "Jane", "Doe", "+49151", mockTime)
		require.NoError(t, err)
		return u
	}

	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(updatedAt)

	t.Run("updates names", func(t *testing.T) {
		user := newUser()

		user.UpdateProfile("Janet", "Smith", nil, mockTime)

		assert.Equal(t, "Janet", user.FirstName)
		assert.Equal(t, "Smith", user.LastName)
		assert.Equal(t, "+49151", user.PhoneNumber)
		assert.Equal(t, updatedAt, user.UpdatedAt)
	})

	t.Run("empty names leave fields untouched", func(t *testing.T) {
		user := newUser()

		user.UpdateProfile("", "  ", nil, mockTime)

		assert.Equal(t, "Jane", user.FirstName)
		assert.Equal(t, "Doe", user.LastName)
	})

	t.Run("phone number can be cleared", func(t *testing.T) {
		user := newUser()

		empty := ""
		user.UpdateProfile("", "", &empty, mockTime)

		assert.Equal(t, "", user.PhoneNumber)
	})
}
