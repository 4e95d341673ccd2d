package referral

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/referral-engine/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/referral-engine/mocks/port/persistence"
)

func TestAttribute(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newTimeProvider := func() *coremocks.MockTimeProvider {
		tp := &coremocks.MockTimeProvider{}
		tp.On("Now").Return(fixedTime).Maybe()
		return tp
	}

	t.Run("Successful attribution", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByReferralCode", mock.Anything, "ABCD1234").
			Return(&entity.User{ID: 7, ReferralCode: "ABCD1234"}, nil).Once()
		users.On("SetReferredBy", mock.Anything, uint64(42), uint64(7), "ABCD1234", fixedTime).
			Return(true, nil).Once()
		users.On("IncrementReferralCount", mock.Anything, uint64(7), fixedTime).
			Return(nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, nil, nil, nil)
		attributor := NewAttributor(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		referrerID, err := attributor.Attribute(ctx, 42, "ABCD1234")

		require.NoError(t, err)
		require.NotNil(t, referrerID)
		assert.Equal(t, uint64(7), *referrerID)
		users.AssertExpectations(t)
	})

	t.Run("Code is trimmed and uppercased before lookup", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByReferralCode", mock.Anything, "ABCD1234").
			Return(&entity.User{ID: 7, ReferralCode: "ABCD1234"}, nil).Once()
		users.On("SetReferredBy", mock.Anything, uint64(42), uint64(7), "ABCD1234", fixedTime).
			Return(true, nil).Once()
		users.On("IncrementReferralCount", mock.Anything, uint64(7), fixedTime).
			Return(nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, nil, nil, nil)
		attributor := NewAttributor(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		referrerID, err := attributor.Attribute(ctx, 42, "  abcd1234  ")

		require.NoError(t, err)
		require.NotNil(t, referrerID)
		users.AssertExpectations(t)
	})

	t.Run("Empty code is a no-op", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, nil, nil, nil)
		attributor := NewAttributor(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		referrerID, err := attributor.Attribute(ctx, 42, "   ")

		assert.NoError(t, err)
		assert.Nil(t, referrerID)
		users.AssertNotCalled(t, "GetByReferralCode", mock.Anything, mock.Anything)
	})

	t.Run("Unknown code is swallowed", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByReferralCode", mock.Anything, "NOSUCH00").
			Return(nil, errs.ErrUserNotFound).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, nil, nil, nil)
		attributor := NewAttributor(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		referrerID, err := attributor.Attribute(ctx, 42, "NOSUCH00")

		assert.NoError(t, err)
		assert.Nil(t, referrerID)
		users.AssertNotCalled(t, "SetReferredBy", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Self-referral is ignored", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByReferralCode", mock.Anything, "ABCD1234").
			Return(&entity.User{ID: 42, ReferralCode: "ABCD1234"}, nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, nil, nil, nil)
		attributor := NewAttributor(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		referrerID, err := attributor.Attribute(ctx, 42, "ABCD1234")

		assert.NoError(t, err)
		assert.Nil(t, referrerID)
		users.AssertNotCalled(t, "SetReferredBy", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already attributed keeps the original referrer", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByReferralCode", mock.Anything, "ABCD1234").
			Return(&entity.User{ID: 7, ReferralCode: "ABCD1234"}, nil).Once()
		users.On("SetReferredBy", mock.Anything, uint64(42), uint64(7), "ABCD1234", fixedTime).
			Return(false, nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, nil, nil, nil)
		attributor := NewAttributor(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		referrerID, err := attributor.Attribute(ctx, 42, "ABCD1234")

		assert.NoError(t, err)
		assert.Nil(t, referrerID)
		users.AssertNotCalled(t, "IncrementReferralCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Repository failure propagates", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByReferralCode", mock.Anything, "ABCD1234").
			Return(nil, errs.ErrDatabaseConnection).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, nil, nil, nil)
		attributor := NewAttributor(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		referrerID, err := attributor.Attribute(ctx, 42, "ABCD1234")

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Nil(t, referrerID)
	})

	t.Run("Zero user ID", func(t *testing.T) {
		uow := persistencemocks.NewPassthroughUnitOfWork(&persistencemocks.MockUserRepository{}, nil, nil, nil, nil)
		attributor := NewAttributor(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		referrerID, err := attributor.Attribute(ctx, 0, "ABCD1234")

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, referrerID)
	})
}
