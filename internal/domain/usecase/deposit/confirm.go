package deposit

import (
	"context"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
)

// ConfirmResult reports what deposit confirmation produced
type ConfirmResult struct {
	Deposit *entity.Deposit
	// Reward is the pending referral reward created for the depositor's
	// referrer, or nil when the user has no referrer or the pair already
	// has a reward.
	Reward *entity.ReferralReward
}

// Confirm settles a pending deposit. Everything runs in one transaction:
// the pending-to-confirmed transition, the plan progress upsert, the
// depositor's balance credit, and, when the depositor was referred and the
// (referrer, depositor) pair has no reward yet, creation of one pending
// referral reward from the tier table. Keeping it co-transactional means a
// confirmed deposit can never be left without its reward; the
// reconciliation sweep in the account summary stays a backstop.
func (s *Service) Confirm(ctx context.Context, depositID uint64) (*ConfirmResult, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.confirmInTx(txCtx, depositID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"deposit_id": depositID,
		"user_id":    result.Deposit.UserID,
		"amount":     result.Deposit.Amount,
	}
	if result.Reward != nil {
		fields["reward_amount"] = result.Reward.GetAmount()
		fields["referrer_id"] = result.Reward.ReferrerID
	}
	s.logger.Info("Deposit confirmed", fields)

	return result, nil
}

func (s *Service) confirmInTx(ctx context.Context, depositID uint64) (*ConfirmResult, error) {
	deposits := s.uow.GetDepositRepository(ctx)
	users := s.uow.GetUserRepository(ctx)
	progress := s.uow.GetPlanProgressRepository(ctx)
	rewards := s.uow.GetRewardRepository(ctx)

	dep, err := deposits.GetByID(ctx, depositID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()

	confirmed, err := deposits.MarkConfirmed(ctx, depositID, now)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, errs.ErrPlanAlreadyActive
	}
	confirmedAt := now
	dep.Status = entity.DepositConfirmed
	dep.ConfirmedAt = &confirmedAt

	if _, err := progress.Upsert(ctx, dep.UserID, dep.Amount, now); err != nil {
		return nil, err
	}

	if err := users.Credit(ctx, dep.UserID, dep.AmountInCents, now); err != nil {
		return nil, err
	}

	depositor, err := users.GetByID(ctx, dep.UserID)
	if err != nil {
		return nil, err
	}

	result := &ConfirmResult{Deposit: dep}

	if !depositor.HasReferrer() {
		return result, nil
	}

	exists, err := rewards.ExistsForPair(ctx, *depositor.ReferredByID, dep.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		// A referrer is paid once per distinct referred user, not once per
		// deposit.
		return result, nil
	}

	reward, ok := entity.NewReferralReward(*depositor.ReferredByID, dep.UserID, dep.Amount, s.timeProvider)
	if !ok {
		return result, nil
	}

	if err := rewards.Create(ctx, reward); err != nil {
		return nil, err
	}
	result.Reward = reward

	return result, nil
}
