package reward

import (
	"context"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/persistence"
)

// Service handles the referral reward lifecycle past creation: the
// admin-gated pending-to-paid transition that credits the recipient.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new reward Service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Approve transitions a pending reward to paid and credits the recipient's
// balance and total earnings, all inside one transaction. The
// pending-to-paid transition is a conditional update checked by affected
// rows, so a reward can be paid at most once no matter how many approvals
// race; a reward that is missing or already terminal fails with
// ErrRewardAlreadyProcessed. Paid is terminal: nothing ever reverts it.
func (s *Service) Approve(ctx context.Context, rewardID uint64, callerRole entity.Role) (*entity.ReferralReward, error) {
	if callerRole != entity.RoleAdmin {
		return nil, errs.ErrForbidden
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	rw, err := s.approveInTx(txCtx, rewardID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Referral reward approved", map[string]any{
		"reward_id":    rw.ID,
		"recipient_id": rw.RecipientID(),
		"amount":       rw.GetAmount(),
	})
	return rw, nil
}

func (s *Service) approveInTx(ctx context.Context, rewardID uint64) (*entity.ReferralReward, error) {
	rewards := s.uow.GetRewardRepository(ctx)
	users := s.uow.GetUserRepository(ctx)

	rw, err := rewards.GetByID(ctx, rewardID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrRewardAlreadyProcessed
		}
		return nil, err
	}

	now := s.timeProvider.Now()

	paid, err := rewards.MarkPaid(ctx, rewardID, now)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, errs.NewRewardError(rewardID, rw.ReferrerID, rw.ReferredUserID,
			"reward is not pending", errs.ErrRewardAlreadyProcessed)
	}

	// Approval credits in the same transaction and stamps credited_at via
	// MarkPaid, so the reconciliation sweep will not credit this reward a
	// second time.
	if err := users.Credit(ctx, rw.RecipientID(), rw.Amount, now); err != nil {
		return nil, err
	}

	paidAt := now
	rw.Status = entity.RewardPaid
	rw.PaidAt = &paidAt
	rw.CreditedAt = &paidAt
	return rw, nil
}

// ListPending returns all rewards awaiting admin review, oldest first
func (s *Service) ListPending(ctx context.Context) ([]*entity.ReferralReward, error) {
	return s.uow.GetRewardRepository(ctx).ListPending(ctx)
}

// ListByReferrer returns the reward history where the user is the referrer
func (s *Service) ListByReferrer(ctx context.Context, referrerID uint64) ([]*entity.ReferralReward, error) {
	if referrerID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.uow.GetRewardRepository(ctx).ListByReferrer(ctx, referrerID)
}
