package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// PlanProgressRepository defines methods to interact with plan progress data
type PlanProgressRepository interface {
	// Upsert creates the (userID, planAmount) row if absent and is a no-op
	// update when it exists. Returns the row either way.
	Upsert(ctx context.Context, userID uint64, planAmount int64, at time.Time) (*entity.PlanProgress, error)

	// ListByUser returns the user's plan progress rows, oldest first.
	// Withdrawal top-up drains rows in this order.
	ListByUser(ctx context.Context, userID uint64) ([]*entity.PlanProgress, error)

	// SumProfit returns the total accrued profit across all of the user's rows
	SumProfit(ctx context.Context, userID uint64) (int64, error)

	// DrainProfit atomically subtracts amountInCents from the row's profit,
	// guarded so profit never goes negative. Returns false when the row no
	// longer holds enough profit.
	DrainProfit(ctx context.Context, progressID uint64, amountInCents int64, at time.Time) (bool, error)
}
