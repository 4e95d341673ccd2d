package referral

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/persistence"
)

// Defaults for code generation. 36^8 candidates make a collision unlikely,
// so exhausting the attempt budget almost always means something else is
// wrong with the database.
const (
	DefaultCodeAttempts = 10
	DefaultCodeBackoff  = 100 * coreport.Millisecond
)

// CodeRegistry generates and assigns unique referral codes. Codes are
// created lazily: a user gets one the first time anything asks for it.
type CodeRegistry struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	maxAttempts  int
	backoff      coreport.Duration
}

// NewCodeRegistry creates a new CodeRegistry with default retry bounds
func NewCodeRegistry(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *CodeRegistry {
	return &CodeRegistry{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		maxAttempts:  DefaultCodeAttempts,
		backoff:      DefaultCodeBackoff,
	}
}

// WithRetryBounds overrides the attempt budget and backoff between attempts
func (r *CodeRegistry) WithRetryBounds(maxAttempts int, backoff coreport.Duration) *CodeRegistry {
	if maxAttempts > 0 {
		r.maxAttempts = maxAttempts
	}
	r.backoff = backoff
	return r
}

// GetOrCreateCode returns the user's referral code, generating and
// assigning one when the stored code is absent or from the legacy UUID
// scheme. The check-then-set for each candidate runs inside one
// transaction, closing the race where two concurrent calls draw the same
// code. Bounded to maxAttempts candidates with a short backoff between
// collisions.
func (r *CodeRegistry) GetOrCreateCode(ctx context.Context, userID uint64) (string, error) {
	if userID == 0 {
		return "", errs.ErrInvalidUserID
	}

	userRepo := r.uow.GetUserRepository(ctx)
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.HasCanonicalReferralCode() {
		return user.ReferralCode, nil
	}

	if entity.IsLegacyReferralCode(user.ReferralCode) {
		r.logger.Info("Replacing legacy referral code", map[string]any{
			"user_id":     userID,
			"legacy_code": user.ReferralCode,
		})
	}

	expected := user.ReferralCode

	var lastErr error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			r.timeProvider.Sleep(r.backoff)
		}

		candidate, err := entity.GenerateReferralCode()
		if err != nil {
			return "", fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
		}

		assigned, err := r.assignInTx(ctx, userID, expected, candidate)
		if err != nil {
			if errors.Is(err, errs.ErrConstraintViolation) {
				// Candidate collided with another user's code. Draw again.
				r.logger.Warn("Referral code collision, retrying", map[string]any{
					"user_id": userID,
					"attempt": attempt + 1,
				})
				lastErr = err
				continue
			}
			return "", err
		}

		if assigned {
			r.logger.Info("Referral code assigned", map[string]any{
				"user_id": userID,
				"code":    candidate,
			})
			return candidate, nil
		}

		// The conditional update matched no row: a concurrent call already
		// assigned a code. Re-read and return it.
		refreshed, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return "", err
		}
		if refreshed.HasCanonicalReferralCode() {
			return refreshed.ReferralCode, nil
		}
		expected = refreshed.ReferralCode
		lastErr = errs.ErrConstraintViolation
	}

	if lastErr == nil {
		lastErr = errs.ErrCodeGenerationExhausted
	}
	err = errs.NewCodeGenerationError(userID, r.maxAttempts, lastErr)
	r.logger.Error("Referral code generation exhausted", map[string]any{
		"user_id":  userID,
		"attempts": r.maxAttempts,
		"error":    err.Error(),
	})
	return "", err
}

// assignInTx performs the conditional code assignment inside its own
// transaction scoped to this attempt.
func (r *CodeRegistry) assignInTx(ctx context.Context, userID uint64, expected, candidate string) (bool, error) {
	txCtx, err := r.uow.Begin(ctx)
	if err != nil {
		return false, err
	}

	assigned, err := r.uow.GetUserRepository(txCtx).AssignReferralCode(txCtx, userID, expected, candidate, r.timeProvider.Now())
	if err != nil {
		_ = r.uow.Rollback(txCtx)
		return false, err
	}

	if err := r.uow.Commit(txCtx); err != nil {
		return false, err
	}
	return assigned, nil
}
