package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/model"
)

// DepositRepository implements the DepositRepository port using GORM
type DepositRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDepositRepository creates a new DepositRepository instance
func NewDepositRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *DepositRepository {
	return &DepositRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *DepositRepository) modelToEntity(m *model.Deposit) *entity.Deposit {
	return &entity.Deposit{
		ID:              m.ID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		AmountInCents:   m.AmountInCents,
		Currency:        m.Currency,
		TransactionHash: m.TransactionHash,
		Status:          entity.DepositStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		ConfirmedAt:     m.ConfirmedAt,
	}
}

func (r *DepositRepository) handleDatabaseError(operation string, err error, depositID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrDepositNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"deposit_id": depositID,
		"error":      err.Error(),
	})

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new pending deposit. The partial unique index on pending
// deposits turns racing submissions into ErrPendingDepositExists.
func (r *DepositRepository) Create(ctx context.Context, deposit *entity.Deposit) error {
	depositModel := model.Deposit{
		UserID:          deposit.UserID,
		Amount:          deposit.Amount,
		AmountInCents:   deposit.AmountInCents,
		Currency:        deposit.Currency,
		TransactionHash: deposit.TransactionHash,
		Status:          string(deposit.Status),
		CreatedAt:       deposit.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&depositModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Concurrent pending deposit rejected", map[string]any{
				"user_id": deposit.UserID,
			})
			return errs.ErrPendingDepositExists
		}
		return r.handleDatabaseError("creating deposit", result.Error, 0)
	}

	deposit.ID = depositModel.ID

	r.logger.Info("Deposit created", map[string]any{
		"deposit_id": deposit.ID,
		"user_id":    deposit.UserID,
		"plan":       deposit.Amount,
	})
	return nil
}

// GetByID retrieves a deposit by ID
func (r *DepositRepository) GetByID(ctx context.Context, id uint64) (*entity.Deposit, error) {
	var depositModel model.Deposit
	result := r.db.WithContext(ctx).First(&depositModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting deposit", result.Error, id)
	}
	return r.modelToEntity(&depositModel), nil
}

// HasPending reports whether the user has a pending deposit
func (r *DepositRepository) HasPending(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Deposit{}).
		Where("user_id = ? AND status = ?", userID, string(entity.DepositPending)).
		Count(&count)
	if result.Error != nil {
		return false, r.handleDatabaseError("counting pending deposits", result.Error, 0)
	}
	return count > 0, nil
}

// HasSettled reports whether the user ever had a confirmed or approved deposit
func (r *DepositRepository) HasSettled(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Deposit{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{string(entity.DepositConfirmed), string(entity.DepositApproved)}).
		Count(&count)
	if result.Error != nil {
		return false, r.handleDatabaseError("counting settled deposits", result.Error, 0)
	}
	return count > 0, nil
}

// MarkConfirmed transitions pending to confirmed in one conditional update
func (r *DepositRepository) MarkConfirmed(ctx context.Context, depositID uint64, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Deposit{}).
		Where("id = ? AND status = ?", depositID, string(entity.DepositPending)).
		Updates(map[string]interface{}{
			"status":       string(entity.DepositConfirmed),
			"confirmed_at": at,
		})

	if result.Error != nil {
		return false, r.handleDatabaseError("confirming deposit", result.Error, depositID)
	}
	return result.RowsAffected > 0, nil
}

// ListByUser returns the user's deposits, newest first
func (r *DepositRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Deposit, error) {
	var depositModels []model.Deposit
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&depositModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing deposits", result.Error, 0)
	}

	deposits := make([]*entity.Deposit, 0, len(depositModels))
	for i := range depositModels {
		deposits = append(deposits, r.modelToEntity(&depositModels[i]))
	}
	return deposits, nil
}
