package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/model"
)

// WithdrawalRepository implements the WithdrawalRepository port using GORM
type WithdrawalRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewWithdrawalRepository creates a new WithdrawalRepository instance
func NewWithdrawalRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WithdrawalRepository {
	return &WithdrawalRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (r *WithdrawalRepository) modelToEntity(m *model.Withdrawal) *entity.Withdrawal {
	return &entity.Withdrawal{
		ID:        m.ID,
		UserID:    m.UserID,
		Reference: m.Reference,
		Amount:    m.Amount,
		Currency:  m.Currency,
		Address:   m.Address,
		Status:    entity.WithdrawalStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

// Create saves a new pending withdrawal
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *entity.Withdrawal) error {
	withdrawalModel := model.Withdrawal{
		UserID:    withdrawal.UserID,
		Reference: withdrawal.Reference,
		Amount:    withdrawal.Amount,
		Currency:  withdrawal.Currency,
		Address:   withdrawal.Address,
		Status:    string(withdrawal.Status),
		CreatedAt: withdrawal.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&withdrawalModel)
	if result.Error != nil {
		r.logger.Error("Database error when creating withdrawal", map[string]any{
			"user_id": withdrawal.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	withdrawal.ID = withdrawalModel.ID

	r.logger.Info("Withdrawal created", map[string]any{
		"withdrawal_id": withdrawal.ID,
		"user_id":       withdrawal.UserID,
		"reference":     withdrawal.Reference,
		"amount":        withdrawal.GetAmount(),
	})
	return nil
}

// ListByUser returns the user's withdrawals, newest first
func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Withdrawal, error) {
	var withdrawalModels []model.Withdrawal
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawalModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing withdrawals", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	withdrawals := make([]*entity.Withdrawal, 0, len(withdrawalModels))
	for i := range withdrawalModels {
		withdrawals = append(withdrawals, r.modelToEntity(&withdrawalModels[i]))
	}
	return withdrawals, nil
}
