package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/model"
)

// PlanProgressRepository implements the PlanProgressRepository port using GORM
type PlanProgressRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewPlanProgressRepository creates a new PlanProgressRepository instance
func NewPlanProgressRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PlanProgressRepository {
	return &PlanProgressRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (r *PlanProgressRepository) modelToEntity(m *model.PlanProgress) *entity.PlanProgress {
	return &entity.PlanProgress{
		ID:          m.ID,
		UserID:      m.UserID,
		PlanAmount:  m.PlanAmount,
		Profit:      m.Profit,
		RoundCount:  m.RoundCount,
		CanWithdraw: m.CanWithdraw,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *PlanProgressRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Upsert creates the (userID, planAmount) row if absent. An existing row is
// left untouched so accrued profit survives repeated confirmations.
func (r *PlanProgressRepository) Upsert(ctx context.Context, userID uint64, planAmount int64, at time.Time) (*entity.PlanProgress, error) {
	progressModel := model.PlanProgress{
		UserID:     userID,
		PlanAmount: planAmount,
		CreatedAt:  at,
		UpdatedAt:  at,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "plan_amount"}},
			DoNothing: true,
		}).
		Create(&progressModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("upserting plan progress", result.Error)
	}

	// DoNothing leaves the model without an ID on conflict, so re-read
	var stored model.PlanProgress
	result = r.db.WithContext(ctx).
		Where("user_id = ? AND plan_amount = ?", userID, planAmount).
		First(&stored)
	if result.Error != nil {
		return nil, r.handleDatabaseError("reading plan progress", result.Error)
	}

	return r.modelToEntity(&stored), nil
}

// ListByUser returns the user's plan progress rows, oldest first
func (r *PlanProgressRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.PlanProgress, error) {
	var progressModels []model.PlanProgress
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&progressModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing plan progress", result.Error)
	}

	rows := make([]*entity.PlanProgress, 0, len(progressModels))
	for i := range progressModels {
		rows = append(rows, r.modelToEntity(&progressModels[i]))
	}
	return rows, nil
}

// SumProfit returns total accrued profit across all of the user's rows
func (r *PlanProgressRepository) SumProfit(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&model.PlanProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, r.handleDatabaseError("summing plan profit", result.Error)
	}
	return total, nil
}

// DrainProfit atomically subtracts from the row's profit, guarded so it
// never goes negative
func (r *PlanProgressRepository) DrainProfit(ctx context.Context, progressID uint64, amountInCents int64, at time.Time) (bool, error) {
	if amountInCents <= 0 {
		return false, errs.ErrInvalidAmount
	}

	result := r.db.WithContext(ctx).Model(&model.PlanProgress{}).
		Where("id = ? AND profit >= ?", progressID, amountInCents).
		Updates(map[string]interface{}{
			"profit":     gorm.Expr("profit - ?", amountInCents),
			"updated_at": at,
		})

	if result.Error != nil {
		return false, r.handleDatabaseError("draining plan profit", result.Error)
	}
	return result.RowsAffected > 0, nil
}
