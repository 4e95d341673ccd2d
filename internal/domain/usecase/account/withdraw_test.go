package account

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

func TestSubmitWithdrawal(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newTimeProvider := func() *coremocks.MockTimeProvider {
		tp := &coremocks.MockTimeProvider{}
		tp.On("Now").Return(fixedTime).Maybe()
		return tp
	}

	unlockedRows := func(profit int64) []*entity.PlanProgress {
		return []*entity.PlanProgress{
			{ID: 1, UserID: 42, PlanAmount: 250, Profit: profit, RoundCount: 3, CanWithdraw: true},
		}
	}

	t.Run("Balance covers the full amount", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}
		progress := &persistencemocks.MockPlanProgressRepository{}
		withdrawals := &persistencemocks.MockWithdrawalRepository{}

		rewards.On("ListUncreditedPaid", mock.Anything, uint64(42)).
			Return([]*entity.ReferralReward{}, nil).Once()
		users.On("GetByID", mock.Anything, uint64(42)).
			Return(&entity.User{ID: 42, Balance: 20000}, nil)
		progress.On("SumProfit", mock.Anything, uint64(42)).Return(int64(5000), nil).Once()
		progress.On("ListByUser", mock.Anything, uint64(42)).Return(unlockedRows(5000), nil)
		users.On("Debit", mock.Anything, uint64(42), int64(10000), fixedTime).Return(nil).Once()
		withdrawals.On("Create", mock.Anything, mock.MatchedBy(func(w *entity.Withdrawal) bool {
			return w.UserID == 42 && w.Amount == 10000 && w.Status == entity.WithdrawalPending
		})).Return(nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, rewards, progress, withdrawals)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		w, err := svc.SubmitWithdrawal(ctx, 42, 10000, "USDT", "TXYZaddress")

		require.NoError(t, err)
		assert.Equal(t, "100.00", w.GetAmount())
		assert.NotEmpty(t, w.Reference)
		users.AssertNotCalled(t, "TopUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		progress.AssertNotCalled(t, "DrainProfit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		withdrawals.AssertExpectations(t)
	})

	t.Run("Shortfall is topped up from plan profit", func(t *testing.T) {
		rows := []*entity.PlanProgress{
			{ID: 1, UserID: 42, PlanAmount: 250, Profit: 5000, RoundCount: 3, CanWithdraw: true},
			{ID: 2, UserID: 42, PlanAmount: 500, Profit: 4000, RoundCount: 2, CanWithdraw: true},
		}

		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}
		progress := &persistencemocks.MockPlanProgressRepository{}
		withdrawals := &persistencemocks.MockWithdrawalRepository{}

		rewards.On("ListUncreditedPaid", mock.Anything, uint64(42)).
			Return([]*entity.ReferralReward{}, nil).Once()
		users.On("GetByID", mock.Anything, uint64(42)).
			Return(&entity.User{ID: 42, Balance: 3000}, nil)
		progress.On("SumProfit", mock.Anything, uint64(42)).Return(int64(9000), nil).Once()
		progress.On("ListByUser", mock.Anything, uint64(42)).Return(rows, nil)

		// Shortfall of 7000: 5000 from the oldest row, 2000 from the next.
		progress.On("DrainProfit", mock.Anything, uint64(1), int64(5000), fixedTime).Return(true, nil).Once()
		progress.On("DrainProfit", mock.Anything, uint64(2), int64(2000), fixedTime).Return(true, nil).Once()
		users.On("TopUp", mock.Anything, uint64(42), int64(7000), fixedTime).Return(nil).Once()
		users.On("Debit", mock.Anything, uint64(42), int64(10000), fixedTime).Return(nil).Once()
		withdrawals.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, rewards, progress, withdrawals)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		w, err := svc.SubmitWithdrawal(ctx, 42, 10000, "USDT", "TXYZaddress")

		require.NoError(t, err)
		assert.Equal(t, int64(10000), w.Amount)
		progress.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("Withdrawal locked", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}
		progress := &persistencemocks.MockPlanProgressRepository{}
		withdrawals := &persistencemocks.MockWithdrawalRepository{}

		rewards.On("ListUncreditedPaid", mock.Anything, uint64(42)).
			Return([]*entity.ReferralReward{}, nil).Once()
		users.On("GetByID", mock.Anything, uint64(42)).
			Return(&entity.User{ID: 42, Balance: 20000}, nil).Once()
		progress.On("SumProfit", mock.Anything, uint64(42)).Return(int64(0), nil).Once()
		progress.On("ListByUser", mock.Anything, uint64(42)).
			Return([]*entity.PlanProgress{}, nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, rewards, progress, withdrawals)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		w, err := svc.SubmitWithdrawal(ctx, 42, 10000, "USDT", "TXYZaddress")

		assert.Nil(t, w)
		assert.ErrorIs(t, err, errs.ErrWithdrawalNotAllowed)
		withdrawals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Amount exceeds the withdrawable total", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}
		progress := &persistencemocks.MockPlanProgressRepository{}
		withdrawals := &persistencemocks.MockWithdrawalRepository{}

		rewards.On("ListUncreditedPaid", mock.Anything, uint64(42)).
			Return([]*entity.ReferralReward{}, nil).Once()
		users.On("GetByID", mock.Anything, uint64(42)).
			Return(&entity.User{ID: 42, Balance: 3000}, nil).Once()
		progress.On("SumProfit", mock.Anything, uint64(42)).Return(int64(2000), nil).Once()
		progress.On("ListByUser", mock.Anything, uint64(42)).Return(unlockedRows(2000), nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, rewards, progress, withdrawals)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		w, err := svc.SubmitWithdrawal(ctx, 42, 10000, "USDT", "TXYZaddress")

		assert.Nil(t, w)
		assert.ErrorIs(t, err, errs.ErrWithdrawalExceedsTotal)
		users.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Profit drained concurrently fails the withdrawal", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		rewards := &persistencemocks.MockRewardRepository{}
		progress := &persistencemocks.MockPlanProgressRepository{}
		withdrawals := &persistencemocks.MockWithdrawalRepository{}

		rewards.On("ListUncreditedPaid", mock.Anything, uint64(42)).
			Return([]*entity.ReferralReward{}, nil).Once()
		users.On("GetByID", mock.Anything, uint64(42)).
			Return(&entity.User{ID: 42, Balance: 3000}, nil)
		progress.On("SumProfit", mock.Anything, uint64(42)).Return(int64(9000), nil).Once()
		progress.On("ListByUser", mock.Anything, uint64(42)).Return(unlockedRows(9000), nil)

		// The guarded drain matches no row: profit moved under us.
		progress.On("DrainProfit", mock.Anything, uint64(1), int64(7000), fixedTime).Return(false, nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(users, nil, rewards, progress, withdrawals)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		w, err := svc.SubmitWithdrawal(ctx, 42, 10000, "USDT", "TXYZaddress")

		assert.Nil(t, w)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		users.AssertNotCalled(t, "TopUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		withdrawals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid request", func(t *testing.T) {
		uow := persistencemocks.NewPassthroughUnitOfWork(nil, nil, nil, nil, nil)
		svc := NewService(uow, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		w, err := svc.SubmitWithdrawal(ctx, 42, -100, "USDT", "TXYZaddress")
		assert.Nil(t, w)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)

		w, err = svc.SubmitWithdrawal(ctx, 42, 100, "USDT", "")
		assert.Nil(t, w)
		assert.ErrorIs(t, err, errs.ErrInvalidAddress)
	})
}

func TestListWithdrawals(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the user's withdrawals", func(t *testing.T) {
		withdrawals := &persistencemocks.MockWithdrawalRepository{}
		withdrawals.On("ListByUser", mock.Anything, uint64(42)).
			Return([]*entity.Withdrawal{{ID: 2}, {ID: 1}}, nil).Once()

		uow := persistencemocks.NewPassthroughUnitOfWork(nil, nil, nil, nil, withdrawals)
		svc := NewService(uow, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		list, err := svc.ListWithdrawals(ctx, 42)

		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Zero user ID", func(t *testing.T) {
		uow := persistencemocks.NewPassthroughUnitOfWork(nil, nil, nil, nil, &persistencemocks.MockWithdrawalRepository{})
		svc := NewService(uow, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		list, err := svc.ListWithdrawals(ctx, 0)

		assert.Nil(t, list)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}
