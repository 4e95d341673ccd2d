package account

import (
	"context"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
)

// GetAccountSummary returns the authoritative withdrawable totals for a
// user. Called on every dashboard load, so it must stay safe under
// concurrent and repeated invocation:
//
//  1. reconcile paid-but-uncredited rewards into the balance (idempotent)
//  2. aggregate plan profit and total profit from the reconciled balance
//  3. derive withdrawal eligibility from plan progress only; reward money
//     never unlocks withdrawal by itself
func (s *Service) GetAccountSummary(ctx context.Context, userID uint64) (*entity.AccountSummary, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	if _, err := s.reconcile(ctx, userID); err != nil {
		return nil, err
	}

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := s.uow.GetPlanProgressRepository(ctx)

	planProfit, err := progress.SumProfit(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	canWithdraw := false
	for _, row := range rows {
		if row.UnlocksWithdrawal() {
			canWithdraw = true
			break
		}
	}

	return &entity.AccountSummary{
		UserID:             userID,
		BalanceInCents:     user.Balance,
		PlanProfitInCents:  planProfit,
		TotalProfitInCents: user.Balance + planProfit,
		CanWithdraw:        canWithdraw,
	}, nil
}
