package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data.
// Balance mutations are expressed as atomic storage-level operations rather
// than read-modify-write: four independent flows (deposit confirmation,
// reward approval, reconciliation, withdrawal) touch the same columns
// concurrently.
type UserRepository interface {
	// Create saves a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: if a user with the same email already exists
	// - ErrDatabaseConnection: if the database connection fails
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: if no user with the given ID exists
	// - ErrDatabaseConnection: if the database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by email (normalized lowercase)
	//
	// Possible errors:
	// - ErrUserNotFound, ErrDatabaseConnection
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByReferralCode retrieves a user by referral code, matched
	// case-insensitively.
	//
	// Possible errors:
	// - ErrUserNotFound, ErrDatabaseConnection
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// AssignReferralCode swaps the stored referral code from expectedCurrent
	// to code in a single conditional update. Returns false without error
	// when the row no longer holds expectedCurrent (a concurrent caller won
	// the race). A unique violation on the code column is reported as
	// ErrConstraintViolation so the generator can retry with a new candidate.
	AssignReferralCode(ctx context.Context, userID uint64, expectedCurrent, code string, at time.Time) (bool, error)

	// SetReferredBy binds the user to a referrer, only if no referrer is set
	// yet. Returns false when the attribution already exists; the original
	// referrer is never overwritten.
	SetReferredBy(ctx context.Context, userID, referrerID uint64, code string, at time.Time) (bool, error)

	// IncrementReferralCount atomically bumps the referrer's counter
	IncrementReferralCount(ctx context.Context, referrerID uint64, at time.Time) error

	// Credit atomically increments balance and total_earned together.
	// Used for deposit confirmation and reward payout; the lockstep between
	// the two columns is enforced here, in one UPDATE.
	Credit(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error

	// TopUp atomically increments balance only. Used when withdrawal
	// moves already-earned plan profit into the liquid balance.
	TopUp(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error

	// Debit atomically decrements balance, guarded so the balance never goes
	// negative. Returns ErrInsufficientBalance when the guard fails.
	Debit(ctx context.Context, userID uint64, amountInCents int64, at time.Time) error
}
