package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// MockUserRepository is a testify mock for the UserRepository port
type MockUserRepository struct {
	mock.Mock
}

// Create mocks saving a new user
func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID mocks retrieving a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// GetByEmail mocks retrieving a user by email
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// GetByReferralCode mocks retrieving a user by referral code
func (m *MockUserRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// AssignReferralCode mocks the conditional code swap
func (m *MockUserRepository) AssignReferralCode(ctx context.Context, userID uint64, expectedCurrent, code string, at time.Time) (bool, error) {
	args := m.Called(ctx, userID, expectedCurrent, code, at)
	return args.Bool(0), args.Error(1)
}

// SetReferredBy mocks the one-shot referrer binding
func (m *MockUserRepository) SetReferredBy(ctx context.Context, userID, referrerID uint64, code string, at time.Time) (bool, error) {
	args := m.Called(ctx, userID, referrerID, code, at)
	return args.Bool(0), args.Error(1)
}

// IncrementReferralCount mocks the referral counter bump
func (m *MockUserRepository) IncrementReferralCount(ctx context.Context, referrerID uint64, at time.Time) error {
	args := m.Called(ctx, referrerID, at)
	return args.Error(0)
}

// Credit mocks the balance and total_earned increment
func (m *MockUserRepository) Credit(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error {
	args := m.Called(ctx, userID, amountInCents, at)
	return args.Error(0)
}

// TopUp mocks the balance-only increment
func (m *MockUserRepository) TopUp(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error {
	args := m.Called(ctx, userID, amountInCents, at)
	return args.Error(0)
}

// Debit mocks the guarded balance decrement
func (m *MockUserRepository) Debit(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error {
	args := m.Called(ctx, userID, amountInCents, at)
	return args.Error(0)
}
