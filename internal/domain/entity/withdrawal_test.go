package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/referral-engine/mocks/port/core"
)

func TestNewWithdrawal(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newTimeProvider := func() *coremocks.MockTimeProvider {
		tp := &coremocks.MockTimeProvider{}
		tp.On("Now").Return(fixedTime).Maybe()
		return tp
	}

	t.Run("Valid pending withdrawal", func(t *testing.T) {
		w, err := NewWithdrawal(42, 10000, "usdt", "TXYZaddress", newTimeProvider())

		require.NoError(t, err)
		assert.Equal(t, uint64(42), w.UserID)
		assert.Equal(t, int64(10000), w.Amount)
		assert.Equal(t, "USDT", w.Currency)
		assert.Equal(t, "TXYZaddress", w.Address)
		assert.Equal(t, WithdrawalPending, w.Status)
		assert.NotEmpty(t, w.Reference)
		assert.Equal(t, fixedTime, w.CreatedAt)
	})

	t.Run("References are unique per request", func(t *testing.T) {
		first, err := NewWithdrawal(42, 100, "USDT", "addr", newTimeProvider())
		require.NoError(t, err)
		second, err := NewWithdrawal(42, 100, "USDT", "addr", newTimeProvider())
		require.NoError(t, err)
		assert.NotEqual(t, first.Reference, second.Reference)
	})

	t.Run("Zero user ID", func(t *testing.T) {
		w, err := NewWithdrawal(0, 100, "USDT", "addr", newTimeProvider())
		assert.Nil(t, w)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("Non-positive amount", func(t *testing.T) {
		for _, amount := range []int64{0, -100} {
			w, err := NewWithdrawal(42, amount, "USDT", "addr", newTimeProvider())
			assert.Nil(t, w)
			assert.ErrorIs(t, err, errs.ErrNegativeAmount)
		}
	})

	t.Run("Empty address", func(t *testing.T) {
		w, err := NewWithdrawal(42, 100, "USDT", "   ", newTimeProvider())
		assert.Nil(t, w)
		assert.ErrorIs(t, err, errs.ErrInvalidAddress)
	})
}
