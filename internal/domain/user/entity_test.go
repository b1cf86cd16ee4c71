//go:build unit

package user_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	email, err := user.NewEmail("  Guest@Example.com ")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		u, err := user.NewUser(email, "  Jane Guest ", "hash", user.RoleCustomer, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, u.ID())
		assert.Equal(t, "guest@example.com", u.Email().Value())
		assert.Equal(t, "Jane Guest", u.FullName())
		assert.True(t, u.IsActive())
		assert.Equal(t, now, u.CreatedAt())
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := user.NewUser(email, "   ", "hash", user.RoleCustomer, now)
		assert.ErrorIs(t, err, user.ErrInvalidFullName)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := user.NewUser(email, "Jane", "hash", user.Role("operator"), now)
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestValueObjects(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		errIs error
	}{
		{name: "valid", email: "valid@example.com"},
		{name: "empty", email: "", errIs: user.ErrInvalidEmail},
		{name: "no at sign", email: "invalidemail.com", errIs: user.ErrInvalidEmail},
		{name: "no tld", email: "a@b", errIs: user.ErrInvalidEmail},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := user.NewEmail(tc.email)
			if tc.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.errIs)
			}
		})
	}

	_, err := user.NewPassword("short")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	_, err = user.NewPassword("long-enough")
	assert.NoError(t, err)

	_, err = user.NewRole("customer")
	assert.NoError(t, err)
	_, err = user.NewRole("viewer")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}
