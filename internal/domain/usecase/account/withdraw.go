package account

import (
	"context"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
)

// SubmitWithdrawal requests a payout of amountInCents against the user's
// withdrawable total. When the amount exceeds the liquid balance, the
// shortfall is drained from plan progress profit (oldest row first,
// partial drains allowed, never negative) into the balance, and only then
// is the balance debited. Top-up and debit run inside one transaction: a
// failed debit rolls the top-up back completely.
func (s *Service) SubmitWithdrawal(ctx context.Context, userID uint64, amountInCents int64, currency, address string) (*entity.Withdrawal, error) {
	withdrawal, err := entity.NewWithdrawal(userID, amountInCents, currency, address, s.timeProvider)
	if err != nil {
		return nil, err
	}

	// Summary runs the reconciliation sweep first, so paid rewards count
	// toward the withdrawable total even if their credit was still pending.
	summary, err := s.GetAccountSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !summary.CanWithdraw {
		return nil, errs.ErrWithdrawalNotAllowed
	}
	if amountInCents > summary.TotalProfitInCents {
		return nil, errs.ErrWithdrawalExceedsTotal
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.withdrawInTx(txCtx, userID, amountInCents, withdrawal); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal submitted", map[string]any{
		"user_id":   userID,
		"amount":    withdrawal.GetAmount(),
		"currency":  withdrawal.Currency,
		"reference": withdrawal.Reference,
	})
	return withdrawal, nil
}

func (s *Service) withdrawInTx(ctx context.Context, userID uint64, amountInCents int64, withdrawal *entity.Withdrawal) error {
	users := s.uow.GetUserRepository(ctx)

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()

	if shortfall := amountInCents - user.Balance; shortfall > 0 {
		topUp, err := s.drainProfit(ctx, userID, shortfall)
		if err != nil {
			return err
		}
		if topUp < shortfall {
			// Profit changed between the summary read and this transaction.
			return errs.NewInsufficientBalanceError(userID,
				entity.AmountInCentsToString(amountInCents), user.GetBalance())
		}
		if err := users.TopUp(ctx, userID, topUp, now); err != nil {
			return err
		}
	}

	if err := users.Debit(ctx, userID, amountInCents, now); err != nil {
		return err
	}

	if err := s.uow.GetWithdrawalRepository(ctx).Create(ctx, withdrawal); err != nil {
		return err
	}

	return nil
}

// ListWithdrawals returns the user's withdrawal requests, newest first
func (s *Service) ListWithdrawals(ctx context.Context, userID uint64) ([]*entity.Withdrawal, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.uow.GetWithdrawalRepository(ctx).ListByUser(ctx, userID)
}

// drainProfit pulls up to needed cents out of the user's plan progress
// rows, oldest first. Each drain is a conditional update so a row's profit
// can never go negative; rows drained concurrently simply contribute less.
func (s *Service) drainProfit(ctx context.Context, userID uint64, needed int64) (int64, error) {
	progress := s.uow.GetPlanProgressRepository(ctx)

	rows, err := progress.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.timeProvider.Now()

	var drained int64
	for _, row := range rows {
		if drained >= needed {
			break
		}
		if row.Profit <= 0 {
			continue
		}

		take := needed - drained
		if take > row.Profit {
			take = row.Profit
		}

		ok, err := progress.DrainProfit(ctx, row.ID, take, now)
		if err != nil {
			return drained, err
		}
		if !ok {
			// Row lost profit since we read it; take whatever is left via
			// the remaining rows.
			continue
		}
		drained += take
	}

	return drained, nil
}
