package persistence

import (
	"context"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// WithdrawalRepository defines methods to interact with withdrawal data
type WithdrawalRepository interface {
	// Create saves a new pending withdrawal
	Create(ctx context.Context, withdrawal *entity.Withdrawal) error

	// ListByUser returns the user's withdrawals, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Withdrawal, error)
}
