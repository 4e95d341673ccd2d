package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/referral-engine/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/referral-engine/mocks/port/persistence"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newTimeProvider := func() *coremocks.MockTimeProvider {
		tp := &coremocks.MockTimeProvider{}
		tp.On("Now").Return(fixedTime).Maybe()
		return tp
	}

	t.Run("Successful registration without referral code", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "alice@example.com" && u.Role == entity.RoleUser
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 42
		}).Return(nil).Once()

		uc := NewUserUseCase(users, nil, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		account, err := uc.Register(ctx, "Alice@Example.com", "s3cretpass", "")

		require.NoError(t, err)
		assert.Equal(t, uint64(42), account.ID)
		assert.Equal(t, "alice@example.com", account.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cretpass")))
		assert.Nil(t, account.ReferredByID)
		users.AssertExpectations(t)
	})

	t.Run("Registration with referral attribution", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 42
		}).Return(nil).Once()

		attributed := false
		attribute := func(ctx context.Context, newUserID uint64, code string) (*uint64, error) {
			attributed = true
			assert.Equal(t, uint64(42), newUserID)
			assert.Equal(t, "ABCD1234", code)
			referrerID := uint64(7)
			return &referrerID, nil
		}

		uc := NewUserUseCase(users, attribute, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		account, err := uc.Register(ctx, "bob@example.com", "s3cretpass", "ABCD1234")

		require.NoError(t, err)
		assert.True(t, attributed)
		require.NotNil(t, account.ReferredByID)
		assert.Equal(t, uint64(7), *account.ReferredByID)
		assert.Equal(t, "ABCD1234", account.ReferredByCode)
	})

	t.Run("Attribution failure never blocks registration", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 42
		}).Return(nil).Once()

		attribute := func(ctx context.Context, newUserID uint64, code string) (*uint64, error) {
			return nil, errs.ErrDatabaseConnection
		}

		uc := NewUserUseCase(users, attribute, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		account, err := uc.Register(ctx, "bob@example.com", "s3cretpass", "ABCD1234")

		require.NoError(t, err)
		assert.Nil(t, account.ReferredByID)
	})

	t.Run("Password too short", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		uc := NewUserUseCase(users, nil, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		account, err := uc.Register(ctx, "alice@example.com", "short", "")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid email", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		uc := NewUserUseCase(users, nil, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		account, err := uc.Register(ctx, "not-an-email", "s3cretpass", "")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, errs.ErrInvalidEmail)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("Create", mock.Anything, mock.Anything).Return(errs.ErrDuplicateUser).Once()

		uc := NewUserUseCase(users, nil, newTimeProvider(), coremocks.NewRelaxedMockLogger())

		account, err := uc.Register(ctx, "alice@example.com", "s3cretpass", "")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &entity.User{ID: 42, Email: "alice@example.com", PasswordHash: string(hash)}

	t.Run("Valid credentials", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil).Once()

		uc := NewUserUseCase(users, nil, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		got, err := uc.Authenticate(ctx, "alice@example.com", "s3cretpass")

		require.NoError(t, err)
		assert.Equal(t, uint64(42), got.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil).Once()

		uc := NewUserUseCase(users, nil, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		got, err := uc.Authenticate(ctx, "alice@example.com", "wrongpass")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Unknown email maps to invalid credentials", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, errs.ErrUserNotFound).Once()

		uc := NewUserUseCase(users, nil, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		got, err := uc.Authenticate(ctx, "ghost@example.com", "s3cretpass")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Database failure is not masked", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, dbErr).Once()

		uc := NewUserUseCase(users, nil, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		got, err := uc.Authenticate(ctx, "alice@example.com", "s3cretpass")

		assert.Nil(t, got)
		assert.Equal(t, dbErr, err)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		users := &persistencemocks.MockUserRepository{}
		users.On("GetByID", mock.Anything, uint64(42)).Return(&entity.User{ID: 42}, nil).Once()

		uc := NewUserUseCase(users, nil, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		got, err := uc.GetByID(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, uint64(42), got.ID)
	})

	t.Run("Zero user ID", func(t *testing.T) {
		uc := NewUserUseCase(&persistencemocks.MockUserRepository{}, nil, &coremocks.MockTimeProvider{}, coremocks.NewRelaxedMockLogger())

		got, err := uc.GetByID(ctx, 0)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}
