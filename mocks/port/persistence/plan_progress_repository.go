package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// MockPlanProgressRepository is a testify mock for the PlanProgressRepository port
type MockPlanProgressRepository struct {
	mock.Mock
}

// Upsert mocks the create-if-absent row operation
func (m *MockPlanProgressRepository) Upsert(ctx context.Context, userID uint64, planAmount int64, at time.Time) (*entity.PlanProgress, error) {
	args := m.Called(ctx, userID, planAmount, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlanProgress), args.Error(1)
}

// ListByUser mocks listing the user's plan progress rows
func (m *MockPlanProgressRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.PlanProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PlanProgress), args.Error(1)
}

// SumProfit mocks the profit aggregation
func (m *MockPlanProgressRepository) SumProfit(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// DrainProfit mocks the guarded profit subtraction
func (m *MockPlanProgressRepository) DrainProfit(ctx context.Context, progressID uint64, amountInCents int64, at time.Time) (bool, error) {
	args := m.Called(ctx, progressID, amountInCents, at)
	return args.Bool(0), args.Error(1)
}
