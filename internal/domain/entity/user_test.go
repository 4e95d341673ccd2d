package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/referral-engine/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newTimeProvider := func() *coremocks.MockTimeProvider {
		tp := &coremocks.MockTimeProvider{}
		tp.On("Now").Return(fixedTime).Maybe()
		return tp
	}

	t.Run("Email is trimmed and lowercased", func(t *testing.T) {
		user, err := NewUser("  Alice@Example.COM  ", "hash", RoleUser, newTimeProvider())
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, RoleUser, user.Role)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("Invalid email", func(t *testing.T) {
		for _, email := range []string{"", "   ", "no-at-sign"} {
			user, err := NewUser(email, "hash", RoleUser, newTimeProvider())
			assert.Nil(t, user)
			assert.ErrorIs(t, err, errs.ErrInvalidEmail)
		}
	})

	t.Run("Unknown role falls back to user", func(t *testing.T) {
		user, err := NewUser("alice@example.com", "hash", Role("superuser"), newTimeProvider())
		require.NoError(t, err)
		assert.Equal(t, RoleUser, user.Role)
	})

	t.Run("Admin role", func(t *testing.T) {
		user, err := NewUser("admin@example.com", "hash", RoleAdmin, newTimeProvider())
		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
	})
}

func TestUserReferralState(t *testing.T) {
	t.Run("HasReferrer", func(t *testing.T) {
		user := &User{}
		assert.False(t, user.HasReferrer())

		referrerID := uint64(7)
		user.ReferredByID = &referrerID
		assert.True(t, user.HasReferrer())
	})

	t.Run("HasCanonicalReferralCode", func(t *testing.T) {
		assert.False(t, (&User{}).HasCanonicalReferralCode())
		assert.False(t, (&User{ReferralCode: "550e8400-e29b-41d4-a716-446655440000"}).HasCanonicalReferralCode())
		assert.True(t, (&User{ReferralCode: "ABCD1234"}).HasCanonicalReferralCode())
	})
}

func TestUserFormattedAmounts(t *testing.T) {
	user := &User{Balance: 12345, TotalEarned: 500}
	assert.Equal(t, "123.45", user.GetBalance())
	assert.Equal(t, "5.00", user.GetTotalEarned())
}
