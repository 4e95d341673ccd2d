package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// MockRewardRepository is a testify mock for the RewardRepository port
type MockRewardRepository struct {
	mock.Mock
}

// Create mocks saving a new pending reward
func (m *MockRewardRepository) Create(ctx context.Context, reward *entity.ReferralReward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

// GetByID mocks retrieving a reward by ID
func (m *MockRewardRepository) GetByID(ctx context.Context, id uint64) (*entity.ReferralReward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReferralReward), args.Error(1)
}

// ExistsForPair mocks the one-reward-per-pair check
func (m *MockRewardRepository) ExistsForPair(ctx context.Context, referrerID, referredUserID uint64) (bool, error) {
	args := m.Called(ctx, referrerID, referredUserID)
	return args.Bool(0), args.Error(1)
}

// MarkPaid mocks the conditional pending-to-paid transition
func (m *MockRewardRepository) MarkPaid(ctx context.Context, rewardID uint64, at time.Time) (bool, error) {
	args := m.Called(ctx, rewardID, at)
	return args.Bool(0), args.Error(1)
}

// MarkCredited mocks the guarded credited stamp
func (m *MockRewardRepository) MarkCredited(ctx context.Context, rewardID uint64, at time.Time) (bool, error) {
	args := m.Called(ctx, rewardID, at)
	return args.Bool(0), args.Error(1)
}

// ListUncreditedPaid mocks listing paid, uncredited rewards
func (m *MockRewardRepository) ListUncreditedPaid(ctx context.Context, userID uint64) ([]*entity.ReferralReward, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ReferralReward), args.Error(1)
}

// ListByReferrer mocks listing a referrer's rewards
func (m *MockRewardRepository) ListByReferrer(ctx context.Context, referrerID uint64) ([]*entity.ReferralReward, error) {
	args := m.Called(ctx, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ReferralReward), args.Error(1)
}

// ListPending mocks listing all pending rewards
func (m *MockRewardRepository) ListPending(ctx context.Context) ([]*entity.ReferralReward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ReferralReward), args.Error(1)
}
