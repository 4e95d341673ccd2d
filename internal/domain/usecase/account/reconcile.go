package account

import (
	"context"

	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/persistence"
)

// Service computes the single authoritative withdrawable total for a user
// and owns the reconciliation sweep that folds paid-but-uncredited rewards
// into the balance.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new account Service
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

// reconcile folds every paid, not-yet-credited reward owed to userID into
// their balance, each inside one transaction. The credited marker is taken
// with a conditional update guarded on credited_at IS NULL; only the caller
// whose update reports an affected row performs the credit. That makes the
// sweep idempotent: any number of concurrent passes credit each reward
// exactly once. Runs on every account summary, so it also serves as the
// backstop for rewards paid by older code paths that credited separately.
//
// Returns the total amount credited by this pass, in cents.
func (s *Service) reconcile(ctx context.Context, userID uint64) (int64, error) {
	pending, err := s.uow.GetRewardRepository(ctx).ListUncreditedPaid(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	var credited int64
	for _, rw := range pending {
		amount, err := s.creditRewardInTx(ctx, rw.ID, rw.RecipientID(), rw.Amount)
		if err != nil {
			return credited, err
		}
		credited += amount
	}

	if credited > 0 {
		s.logger.Info("Reconciled paid rewards into balance", map[string]any{
			"user_id":  userID,
			"credited": credited,
			"rewards":  len(pending),
		})
	}
	return credited, nil
}

// creditRewardInTx marks one reward credited and credits the recipient,
// atomically. A false from MarkCredited means a concurrent pass already
// owns this reward; the credit is skipped without error.
func (s *Service) creditRewardInTx(ctx context.Context, rewardID, recipientID uint64, amount int64) (int64, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, err
	}

	now := s.timeProvider.Now()

	taken, err := s.uow.GetRewardRepository(txCtx).MarkCredited(txCtx, rewardID, now)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return 0, err
	}
	if !taken {
		_ = s.uow.Rollback(txCtx)
		return 0, nil
	}

	if err := s.uow.GetUserRepository(txCtx).Credit(txCtx, recipientID, amount, now); err != nil {
		_ = s.uow.Rollback(txCtx)
		return 0, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return 0, err
	}
	return amount, nil
}
