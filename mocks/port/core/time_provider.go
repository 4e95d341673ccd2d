package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
)

// MockTimeProvider is a testify mock for the TimeProvider port
type MockTimeProvider struct {
	mock.Mock
}

// Now returns the mocked current time
func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// Since returns the mocked elapsed duration
func (m *MockTimeProvider) Since(t time.Time) core.Duration {
	args := m.Called(t)
	return args.Get(0).(core.Duration)
}

// Until returns the mocked remaining duration
func (m *MockTimeProvider) Until(t time.Time) core.Duration {
	args := m.Called(t)
	return args.Get(0).(core.Duration)
}

// Sleep records the sleep call without waiting
func (m *MockTimeProvider) Sleep(d core.Duration) {
	m.Called(d)
}

// WithTimeout returns the mocked context and cancel function
func (m *MockTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	args := m.Called(ctx, timeout)
	return args.Get(0).(context.Context), args.Get(1).(context.CancelFunc)
}

// ParseDuration returns the mocked parsed duration
func (m *MockTimeProvider) ParseDuration(s string) (core.Duration, error) {
	args := m.Called(s)
	return args.Get(0).(core.Duration), args.Error(1)
}
