package persistence

import (
	"context"
)

// UnitOfWork coordinates multi-repository mutations inside one database
// transaction. Every flow that must be atomic (code assignment, deposit
// confirmation with reward creation, reward approval, reconciliation
// credit, withdrawal top-up plus debit) runs between Begin and Commit.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetDepositRepository returns a deposit repository bound to the current transaction
	GetDepositRepository(ctx context.Context) DepositRepository

	// GetRewardRepository returns a reward repository bound to the current transaction
	GetRewardRepository(ctx context.Context) RewardRepository

	// GetPlanProgressRepository returns a plan progress repository bound to the current transaction
	GetPlanProgressRepository(ctx context.Context) PlanProgressRepository

	// GetWithdrawalRepository returns a withdrawal repository bound to the current transaction
	GetWithdrawalRepository(ctx context.Context) WithdrawalRepository
}
