package reward

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

func TestApprove(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newTimeProvider := func() *coremocks.MockTimeProvider {
		tp := &coremocks.MockTimeProvider{}
		tp.On("Now").Return(fixedTime).Maybe()
		return tp
	}

	pendingReward := func() *entity.ReferralReward {
		return &entity.ReferralReward{
			ID:             5,
			ReferrerID:     7,
			ReferredUserID: 42,
			Recipient:      entity.RecipientReferrer,
			Amount:         1000,
			PlanAmount:     250,
			Status:         entity.RewardPending,
		}
	}

	t.Run("Admin approves a pending reward", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}

		rewards.On("GetByID", mock.Anything, uint64(5)).Return(pendingReward(), nil).Once()
		rewards.On("MarkPaid", mock.Anything, uint64(5), fixedTime).Return(true, nil).Once()
		users.On("Credit", mock.Anything, uint64(7), int64(1000), fixedTime).Return(nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, rewards, nil, nil)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		rw, err := svc.Approve(ctx, 5, entity.RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, entity.RewardPaid, rw.Status)
		require.NotNil(t, rw.PaidAt)
		assert.Equal(t, fixedTime, *rw.PaidAt)
		require.NotNil(t, rw.CreditedAt)
		users.AssertExpectations(t)
		rewards.AssertExpectations(t)
	})

	t.Run("Referred-user bonus credits the referred user", func(t *testing.T) {
		rw := pendingReward()
		rw.Recipient = entity.RecipientReferredUser
		rw.PlanType = entity.PlanTypeReferredUserBonus

		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}

		rewards.On("GetByID", mock.Anything, uint64(5)).Return(rw, nil).Once()
		rewards.On("MarkPaid", mock.Anything, uint64(5), fixedTime).Return(true, nil).Once()
		users.On("Credit", mock.Anything, uint64(42), int64(1000), fixedTime).Return(nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, rewards, nil, nil)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		_, err := svc.Approve(ctx, 5, entity.RoleAdmin)

		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("Non-admin caller is rejected", func(t *testing.T) {
		rewards := &persistencemocks.MockRewardRepository{}
		uow := persistencemocks.NewPassthroughUnitOfWork(&persistencemocks.MockUserRepository{}, nil, rewards, nil, nil)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		rw, err := svc.Approve(ctx, 5, entity.RoleUser)

		assert.Nil(t, rw)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		rewards.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Second approval is rejected without a second credit", func(t *testing.T) {
		paid := pendingReward()
		paid.Status = entity.RewardPaid

		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}

		rewards.On("GetByID", mock.Anything, uint64(5)).Return(paid, nil).Once()
		rewards.On("MarkPaid", mock.Anything, uint64(5), fixedTime).Return(false, nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, rewards, nil, nil)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		rw, err := svc.Approve(ctx, 5, entity.RoleAdmin)

		assert.Nil(t, rw)
		assert.ErrorIs(t, err, errs.ErrRewardAlreadyProcessed)
		users.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing reward maps to already processed", func(t *testing.T) {
		rewards := &persistencemocks.MockRewardRepository{}
		rewards.On("GetByID", mock.Anything, uint64(99)).Return(nil, errs.ErrRewardNotFound).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(&persistencemocks.MockUserRepository{}, nil, rewards, nil, nil)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		rw, err := svc.Approve(ctx, 99, entity.RoleAdmin)

		assert.Nil(t, rw)
		assert.ErrorIs(t, err, errs.ErrRewardAlreadyProcessed)
	})

	t.Run("Credit failure rolls the approval back", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}

		rewards.On("GetByID", mock.Anything, uint64(5)).Return(pendingReward(), nil).Once()
		rewards.On("MarkPaid", mock.Anything, uint64(5), fixedTime).Return(true, nil).Once()
		users.On("Credit", mock.Anything, uint64(7), int64(1000), fixedTime).
			Return(errs.ErrDatabaseConnection).Once()

		uow := &persistencemocks.MockUnitOfWork{}
		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		uow.On("GetUserRepository", mock.Anything).Return(users)
		uow.On("GetRewardRepository", mock.Anything).Return(rewards)

		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		rw, err := svc.Approve(ctx, 5, entity.RoleAdmin)

		assert.Nil(t, rw)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestListPending(t *testing.T) {
	ctx := context.Background()

	rewards := &persistencemocks.MockRewardRepository{}
	rewards.On("ListPending", mock.Anything).
		Return([]*entity.ReferralReward{{ID: 1}, {ID: 2}}, nil).Once()

	uow := persistencemocks.NewPassthroughUnitOfWork(nil, nil, rewards, nil, nil)
	svc := NewService(uow, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

	list, err := svc.ListPending(ctx)

	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListByReferrer(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the referrer's rewards", func(t *testing.T) {
		rewards := &persistencemocks.MockRewardRepository{}
		rewards.On("ListByReferrer", mock.Anything, uint64(7)).
			Return([]*entity.ReferralReward{{ID: 1, ReferrerID: 7}}, nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(nil, nil, rewards, nil, nil)
		svc := NewService(uow, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		list, err := svc.ListByReferrer(ctx, 7)

		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Zero referrer ID", func(t *testing.T) {
		uow := persistencemocks.NewPassthroughUnitOfWork(nil, nil, &persistencemocks.MockRewardRepository{}, nil, nil)
		svc := NewService(uow, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		list, err := svc.ListByReferrer(ctx, 0)

		assert.Nil(t, list)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}
