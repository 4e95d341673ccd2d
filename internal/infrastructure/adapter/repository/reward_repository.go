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

// RewardRepository implements the RewardRepository port using GORM. The
// lifecycle transitions are conditional updates whose RowsAffected result
// carries the idempotency signal.
type RewardRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewRewardRepository creates a new RewardRepository instance
func NewRewardRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *RewardRepository {
	return &RewardRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *RewardRepository) modelToEntity(m *model.ReferralReward) *entity.ReferralReward {
	return &entity.ReferralReward{
		ID:             m.ID,
		ReferrerID:     m.ReferrerID,
		ReferredUserID: m.ReferredUserID,
		Recipient:      entity.RecipientRole(m.Recipient),
		Amount:         m.Amount,
		PlanAmount:     m.PlanAmount,
		PlanType:       m.PlanType,
		Status:         entity.RewardStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		PaidAt:         m.PaidAt,
		CreditedAt:     m.CreditedAt,
	}
}

func (r *RewardRepository) handleDatabaseError(operation string, err error, rewardID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrRewardNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"reward_id": rewardID,
		"error":     err.Error(),
	})

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new pending reward. The unique pair index makes a second
// insert for the same (referrer, referred user) fail deterministically.
func (r *RewardRepository) Create(ctx context.Context, reward *entity.ReferralReward) error {
	rewardModel := model.ReferralReward{
		ReferrerID:     reward.ReferrerID,
		ReferredUserID: reward.ReferredUserID,
		Recipient:      string(reward.Recipient),
		Amount:         reward.Amount,
		PlanAmount:     reward.PlanAmount,
		PlanType:       reward.PlanType,
		Status:         string(reward.Status),
		CreatedAt:      reward.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&rewardModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate reward insert rejected", map[string]any{
				"referrer_id":      reward.ReferrerID,
				"referred_user_id": reward.ReferredUserID,
			})
			return errs.ErrConstraintViolation
		}
		return r.handleDatabaseError("creating reward", result.Error, 0)
	}

	reward.ID = rewardModel.ID

	r.logger.Info("Referral reward created", map[string]any{
		"reward_id":   reward.ID,
		"referrer_id": reward.ReferrerID,
		"amount":      reward.GetAmount(),
	})
	return nil
}

// GetByID retrieves a reward by ID
func (r *RewardRepository) GetByID(ctx context.Context, id uint64) (*entity.ReferralReward, error) {
	var rewardModel model.ReferralReward
	result := r.db.WithContext(ctx).First(&rewardModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting reward", result.Error, id)
	}
	return r.modelToEntity(&rewardModel), nil
}

// ExistsForPair reports whether any reward exists for the pair
func (r *RewardRepository) ExistsForPair(ctx context.Context, referrerID, referredUserID uint64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.ReferralReward{}).
		Where("referrer_id = ? AND referred_user_id = ?", referrerID, referredUserID).
		Count(&count)
	if result.Error != nil {
		return false, r.handleDatabaseError("checking reward pair", result.Error, 0)
	}
	return count > 0, nil
}

// MarkPaid transitions pending to paid, stamping paid_at and credited_at
// together. The caller credits the recipient in the same transaction, so a
// paid reward is by construction already folded into the balance.
func (r *RewardRepository) MarkPaid(ctx context.Context, rewardID uint64, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.ReferralReward{}).
		Where("id = ? AND status = ?", rewardID, string(entity.RewardPending)).
		Updates(map[string]interface{}{
			"status":      string(entity.RewardPaid),
			"paid_at":     at,
			"credited_at": at,
		})

	if result.Error != nil {
		return false, r.handleDatabaseError("marking reward paid", result.Error, rewardID)
	}
	return result.RowsAffected > 0, nil
}

// MarkCredited stamps credited_at, guarded on credited_at IS NULL
func (r *RewardRepository) MarkCredited(ctx context.Context, rewardID uint64, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.ReferralReward{}).
		Where("id = ? AND credited_at IS NULL", rewardID).
		Update("credited_at", at)

	if result.Error != nil {
		return false, r.handleDatabaseError("marking reward credited", result.Error, rewardID)
	}
	return result.RowsAffected > 0, nil
}

// ListUncreditedPaid returns paid rewards not yet folded into the user's
// balance, oldest first. The recipient column decides whose balance a
// reward belongs to.
func (r *RewardRepository) ListUncreditedPaid(ctx context.Context, userID uint64) ([]*entity.ReferralReward, error) {
	var rewardModels []model.ReferralReward
	result := r.db.WithContext(ctx).
		Where("status = ? AND credited_at IS NULL", string(entity.RewardPaid)).
		Where("(recipient = ? AND referrer_id = ?) OR (recipient = ? AND referred_user_id = ?)",
			string(entity.RecipientReferrer), userID,
			string(entity.RecipientReferredUser), userID).
		Order("created_at ASC").
		Find(&rewardModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing uncredited rewards", result.Error, 0)
	}

	rewards := make([]*entity.ReferralReward, 0, len(rewardModels))
	for i := range rewardModels {
		rewards = append(rewards, r.modelToEntity(&rewardModels[i]))
	}
	return rewards, nil
}

// ListByReferrer returns all rewards where the user is the referrer, newest first
func (r *RewardRepository) ListByReferrer(ctx context.Context, referrerID uint64) ([]*entity.ReferralReward, error) {
	var rewardModels []model.ReferralReward
	result := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&rewardModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing rewards by referrer", result.Error, 0)
	}

	rewards := make([]*entity.ReferralReward, 0, len(rewardModels))
	for i := range rewardModels {
		rewards = append(rewards, r.modelToEntity(&rewardModels[i]))
	}
	return rewards, nil
}

// ListPending returns all pending rewards, oldest first
func (r *RewardRepository) ListPending(ctx context.Context) ([]*entity.ReferralReward, error) {
	var rewardModels []model.ReferralReward
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.RewardPending)).
		Order("created_at ASC").
		Find(&rewardModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing pending rewards", result.Error, 0)
	}

	rewards := make([]*entity.ReferralReward, 0, len(rewardModels))
	for i := range rewardModels {
		rewards = append(rewards, r.modelToEntity(&rewardModels[i]))
	}
	return rewards, nil
}
