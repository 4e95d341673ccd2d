package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/persistence"
)

// MockUnitOfWork is a testify mock for the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

// NewPassthroughUnitOfWork returns a MockUnitOfWork whose Begin, Commit and
// Rollback all succeed and whose getters hand back the given repositories.
// Most use-case tests only care about the repositories, not the
// transaction choreography.
func NewPassthroughUnitOfWork(
	users *MockUserRepository,
	deposits *MockDepositRepository,
	rewards *MockRewardRepository,
	progress *MockPlanProgressRepository,
	withdrawals *MockWithdrawalRepository,
) *MockUnitOfWork {
	uow := &MockUnitOfWork{}
	uow.On("Begin", mock.Anything).Return(context.Background(), nil).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	if users != nil {
		uow.On("GetUserRepository", mock.Anything).Return(users).Maybe()
	}
	if deposits != nil {
		uow.On("GetDepositRepository", mock.Anything).Return(deposits).Maybe()
	}
	if rewards != nil {
		uow.On("GetRewardRepository", mock.Anything).Return(rewards).Maybe()
	}
	if progress != nil {
		uow.On("GetPlanProgressRepository", mock.Anything).Return(progress).Maybe()
	}
	if withdrawals != nil {
		uow.On("GetWithdrawalRepository", mock.Anything).Return(withdrawals).Maybe()
	}
	return uow
}

// Begin mocks starting a transaction
func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

// Commit mocks committing the transaction
func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Rollback mocks rolling back the transaction
func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetUserRepository mocks the transactional user repository getter
func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.UserRepository)
}

// GetDepositRepository mocks the transactional deposit repository getter
func (m *MockUnitOfWork) GetDepositRepository(ctx context.Context) persistence.DepositRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.DepositRepository)
}

// GetRewardRepository mocks the transactional reward repository getter
func (m *MockUnitOfWork) GetRewardRepository(ctx context.Context) persistence.RewardRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.RewardRepository)
}

// GetPlanProgressRepository mocks the transactional plan progress repository getter
func (m *MockUnitOfWork) GetPlanProgressRepository(ctx context.Context) persistence.PlanProgressRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.PlanProgressRepository)
}

// GetWithdrawalRepository mocks the transactional withdrawal repository getter
func (m *MockUnitOfWork) GetWithdrawalRepository(ctx context.Context) persistence.WithdrawalRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.WithdrawalRepository)
}
