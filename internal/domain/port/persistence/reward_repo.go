package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// RewardRepository defines methods to interact with referral reward data
type RewardRepository interface {
	// Create saves a new pending reward. A unique index on
	// (referrer_id, referred_user_id) backs the one-reward-per-pair
	// invariant; violations surface as ErrConstraintViolation.
	Create(ctx context.Context, reward *entity.ReferralReward) error

	// GetByID retrieves a reward by ID
	//
	// Possible errors:
	// - ErrRewardNotFound, ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.ReferralReward, error)

	// ExistsForPair reports whether any reward exists for the
	// (referrer, referred user) pair. Used as the idempotency guard before
	// reward creation.
	ExistsForPair(ctx context.Context, referrerID, referredUserID uint64) (bool, error)

	// MarkPaid transitions the reward from pending to paid in a single
	// conditional update, stamping paid_at and credited_at together
	// (approval credits the recipient in the same transaction). Returns
	// false when the reward was missing or not pending.
	MarkPaid(ctx context.Context, rewardID uint64, at time.Time) (bool, error)

	// MarkCredited stamps credited_at, guarded on credited_at IS NULL.
	// The boolean result is the only signal reconciliation may trust:
	// true means this caller owns the credit, false means another pass
	// already took it.
	MarkCredited(ctx context.Context, rewardID uint64, at time.Time) (bool, error)

	// ListUncreditedPaid returns paid rewards whose amount has not yet been
	// folded into the given user's balance, oldest first.
	ListUncreditedPaid(ctx context.Context, userID uint64) ([]*entity.ReferralReward, error)

	// ListByReferrer returns all rewards where the user is the referrer,
	// newest first.
	ListByReferrer(ctx context.Context, referrerID uint64) ([]*entity.ReferralReward, error)

	// ListPending returns all pending rewards for admin review, oldest first
	ListPending(ctx context.Context) ([]*entity.ReferralReward, error)
}
