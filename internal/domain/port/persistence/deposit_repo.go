package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// DepositRepository defines methods to interact with deposit data
type DepositRepository interface {
	// Create saves a new pending deposit. A partial unique index on
	// (user_id) WHERE status = 'pending' backs the one-pending-deposit
	// invariant; violations surface as ErrPendingDepositExists.
	Create(ctx context.Context, deposit *entity.Deposit) error

	// GetByID retrieves a deposit by ID
	//
	// Possible errors:
	// - ErrDepositNotFound, ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.Deposit, error)

	// HasPending reports whether the user has a pending deposit
	HasPending(ctx context.Context, userID uint64) (bool, error)

	// HasSettled reports whether the user ever had a confirmed or approved
	// deposit (single-plan policy).
	HasSettled(ctx context.Context, userID uint64) (bool, error)

	// MarkConfirmed transitions the deposit from pending to confirmed in a
	// single conditional update and stamps confirmed_at. Returns false when
	// the deposit was not pending, so confirmation cannot run twice.
	MarkConfirmed(ctx context.Context, depositID uint64, at time.Time) (bool, error)

	// ListByUser returns the user's deposits, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Deposit, error)
}
