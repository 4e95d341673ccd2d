package deposit

import (
	"context"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/persistence"
)

// Service handles the deposit lifecycle: submission of a claimed funding
// event and its admin confirmation, which is where referral rewards are
// born.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new deposit Service
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

// Submit records a claimed deposit for one of the fixed plan tiers.
// Enforces the single-plan policy: at most one pending deposit at a time,
// and no new deposits once one has been confirmed.
func (s *Service) Submit(ctx context.Context, userID uint64, amount int64, currency, transactionHash string) (*entity.Deposit, error) {
	dep, err := entity.NewDeposit(userID, amount, currency, transactionHash, s.timeProvider)
	if err != nil {
		return nil, err
	}

	deposits := s.uow.GetDepositRepository(ctx)

	settled, err := deposits.HasSettled(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settled {
		return nil, errs.ErrPlanAlreadyActive
	}

	pending, err := deposits.HasPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, errs.ErrPendingDepositExists
	}

	// The partial unique index on pending deposits backs this check; a
	// concurrent submit that slips past it fails on Create instead.
	if err := deposits.Create(ctx, dep); err != nil {
		return nil, err
	}

	s.logger.Info("Deposit submitted", map[string]any{
		"user_id":  userID,
		"amount":   amount,
		"currency": dep.Currency,
		"tx_hash":  dep.TransactionHash,
	})
	return dep, nil
}

// ListByUser returns the user's deposits, newest first
func (s *Service) ListByUser(ctx context.Context, userID uint64) ([]*entity.Deposit, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.uow.GetDepositRepository(ctx).ListByUser(ctx, userID)
}
