package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/persistence"
)

// minPasswordLength is the minimum accepted password length at registration
const minPasswordLength = 8

// AttributeFunc binds a freshly registered user to a referrer. Kept as a
// function value so registration does not depend on the referral package
// directly and the two concerns stay independently testable.
type AttributeFunc func(ctx context.Context, newUserID uint64, suppliedCode string) (*uint64, error)

// UserUseCase handles registration and authentication
type UserUseCase struct {
	userRepo     persistence.UserRepository
	attribute    AttributeFunc
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	userRepo persistence.UserRepository,
	attribute AttributeFunc,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		attribute:    attribute,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Register creates a new account and, when a referral code is supplied,
// attributes the new user to its owner. Attribution failures are logged
// and never block registration; the new user's own referral code is
// generated lazily on first request, not here, so neither concern can
// block the other.
func (u *UserUseCase) Register(ctx context.Context, email, password, referralCode string) (*entity.User, error) {
	if len(password) < minPasswordLength {
		return nil, errs.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser, err := entity.NewUser(email, string(hash), entity.RoleUser, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.Create(ctx, newUser); err != nil {
		u.logger.Error("Failed to create user", map[string]any{
			"email": newUser.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	if u.attribute != nil && referralCode != "" {
		referrerID, err := u.attribute(ctx, newUser.ID, referralCode)
		if err != nil {
			u.logger.Error("Referral attribution failed, continuing registration", map[string]any{
				"user_id": newUser.ID,
				"code":    referralCode,
				"error":   err.Error(),
			})
		} else if referrerID != nil {
			refID := *referrerID
			newUser.ReferredByID = &refID
			newUser.ReferredByCode = referralCode
		}
	}

	u.logger.Info("User registered", map[string]any{
		"user_id": newUser.ID,
		"email":   newUser.Email,
	})
	return newUser, nil
}

// Authenticate verifies credentials and returns the user
func (u *UserUseCase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	account, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, errs.ErrInvalidCredentials
	}

	return account, nil
}

// GetByID returns the user with the given ID
func (u *UserUseCase) GetByID(ctx context.Context, userID uint64) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return u.userRepo.GetByID(ctx, userID)
}
