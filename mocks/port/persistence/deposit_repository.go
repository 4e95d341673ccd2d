package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// MockDepositRepository is a testify mock for the DepositRepository port
type MockDepositRepository struct {
	mock.Mock
}

// Create mocks saving a new pending deposit
func (m *MockDepositRepository) Create(ctx context.Context, deposit *entity.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

// GetByID mocks retrieving a deposit by ID
func (m *MockDepositRepository) GetByID(ctx context.Context, id uint64) (*entity.Deposit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deposit), args.Error(1)
}

// HasPending mocks the pending deposit check
func (m *MockDepositRepository) HasPending(ctx context.Context, userID uint64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// HasSettled mocks the settled deposit check
func (m *MockDepositRepository) HasSettled(ctx context.Context, userID uint64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MarkConfirmed mocks the conditional pending-to-confirmed transition
func (m *MockDepositRepository) MarkConfirmed(ctx context.Context, depositID uint64, at time.Time) (bool, error) {
	args := m.Called(ctx, depositID, at)
	return args.Bool(0), args.Error(1)
}

// ListByUser mocks listing the user's deposits
func (m *MockDepositRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Deposit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Deposit), args.Error(1)
}
