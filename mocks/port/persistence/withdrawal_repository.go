package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// MockWithdrawalRepository is a testify mock for the WithdrawalRepository port
type MockWithdrawalRepository struct {
	mock.Mock
}

// Create mocks saving a new pending withdrawal
func (m *MockWithdrawalRepository) Create(ctx context.Context, withdrawal *entity.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

// ListByUser mocks listing the user's withdrawals
func (m *MockWithdrawalRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Withdrawal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Withdrawal), args.Error(1)
}
