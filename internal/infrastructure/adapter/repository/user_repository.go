package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/model"
)

// UserRepository implements the UserRepository port using GORM. All balance
// mutations run as single UPDATE statements with SQL expressions so that
// concurrent flows never read stale state.
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *UserRepository) modelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:             m.ID,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           entity.Role(m.Role),
		ReferralCode:   m.ReferralCode,
		ReferredByID:   m.ReferredByID,
		ReferredByCode: m.ReferredByCode,
		ReferralCount:  m.ReferralCount,
		Balance:        m.Balance,
		TotalEarned:    m.TotalEarned,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating new user", map[string]any{
		"email": user.Email,
		"role":  string(user.Role),
	})

	userModel := model.User{
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		Role:           string(user.Role),
		ReferralCode:   user.ReferralCode,
		ReferredByID:   user.ReferredByID,
		ReferredByCode: user.ReferredByCode,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, 0)
	}

	user.ID = userModel.ID

	r.logger.Info("User created successfully", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var userModel model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by email", result.Error, 0)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByReferralCode retrieves a user by referral code, case-insensitively
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	code = strings.TrimSpace(code)

	var userModel model.User
	result := r.db.WithContext(ctx).
		Where("UPPER(referral_code) = UPPER(?)", code).
		First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by referral code", result.Error, 0)
	}
	return r.modelToEntity(&userModel), nil
}

// AssignReferralCode swaps the stored code from expectedCurrent to code in
// one conditional update. RowsAffected tells the caller whether it won the
// race; a unique violation on the new code maps to ErrConstraintViolation
// so the generator retries with a fresh candidate.
func (r *UserRepository) AssignReferralCode(ctx context.Context, userID uint64, expectedCurrent, code string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND referral_code = ?", userID, expectedCurrent).
		Updates(map[string]interface{}{
			"referral_code": code,
			"updated_at":    at,
		})

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Referral code collision", map[string]any{
				"user_id": userID,
				"code":    code,
			})
			return false, errs.ErrConstraintViolation
		}
		return false, r.handleDatabaseError("assigning referral code", result.Error, userID)
	}

	return result.RowsAffected > 0, nil
}

// SetReferredBy binds the user to a referrer, only if no referrer is set yet
func (r *UserRepository) SetReferredBy(ctx context.Context, userID, referrerID uint64, code string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND referred_by_id IS NULL", userID).
		Updates(map[string]interface{}{
			"referred_by_id":   referrerID,
			"referred_by_code": code,
			"updated_at":       at,
		})

	if result.Error != nil {
		return false, r.handleDatabaseError("setting referrer", result.Error, userID)
	}

	return result.RowsAffected > 0, nil
}

// IncrementReferralCount atomically bumps the referrer's counter
func (r *UserRepository) IncrementReferralCount(ctx context.Context, referrerID uint64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", referrerID).
		Updates(map[string]interface{}{
			"referral_count": gorm.Expr("referral_count + 1"),
			"updated_at":     at,
		})

	if result.Error != nil {
		return r.handleDatabaseError("incrementing referral count", result.Error, referrerID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// Credit atomically increments balance and total_earned together
func (r *UserRepository) Credit(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error {
	if amountInCents <= 0 {
		return errs.ErrInvalidAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"balance":      gorm.Expr("balance + ?", amountInCents),
			"total_earned": gorm.Expr("total_earned + ?", amountInCents),
			"updated_at":   at,
		})

	if result.Error != nil {
		return r.handleDatabaseError("crediting user", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}

	r.logger.Debug("User credited", map[string]any{
		"user_id": userID,
		"amount":  entity.AmountInCentsToString(amountInCents),
	})
	return nil
}

// TopUp atomically increments balance only. Total earnings stay untouched
// because the profit being moved was already counted when it accrued.
func (r *UserRepository) TopUp(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error {
	if amountInCents <= 0 {
		return errs.ErrInvalidAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amountInCents),
			"updated_at": at,
		})

	if result.Error != nil {
		return r.handleDatabaseError("topping up user", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// Debit atomically decrements balance, guarded against going negative
func (r *UserRepository) Debit(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error {
	if amountInCents <= 0 {
		return errs.ErrInvalidAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND balance >= ?", userID, amountInCents).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amountInCents),
			"updated_at": at,
		})

	if result.Error != nil {
		return r.handleDatabaseError("debiting user", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Insufficient balance for debit", map[string]any{
			"user_id": userID,
			"amount":  entity.AmountInCentsToString(amountInCents),
		})
		return errs.ErrInsufficientBalance
	}

	r.logger.Debug("User debited", map[string]any{
		"user_id": userID,
		"amount":  entity.AmountInCentsToString(amountInCents),
	})
	return nil
}
