package referral

import (
	"context"
	"strings"

	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/persistence"
)

// Attributor binds a newly registered user to a referrer. Attribution
// happens exactly once, at registration, and never creates a reward:
// reward creation is deferred to the first qualifying deposit.
type Attributor struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAttributor creates a new Attributor
func NewAttributor(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Attributor {
	return &Attributor{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Attribute resolves suppliedCode to a referrer and binds newUserID to
// them. An unknown or self-referencing code is logged and swallowed:
// registration must never fail because of a bad referral code. Returns the
// referrer's ID when attribution succeeded, nil otherwise.
func (a *Attributor) Attribute(ctx context.Context, newUserID uint64, suppliedCode string) (*uint64, error) {
	if newUserID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	code := strings.ToUpper(strings.TrimSpace(suppliedCode))
	if code == "" {
		return nil, nil
	}

	userRepo := a.uow.GetUserRepository(ctx)

	referrer, err := userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		if errs.IsNotFoundError(err) {
			a.logger.Warn("Referral code did not match any user", map[string]any{
				"user_id": newUserID,
				"code":    code,
			})
			return nil, nil
		}
		return nil, err
	}

	if referrer.ID == newUserID {
		a.logger.Warn("Self-referral attempt ignored", map[string]any{
			"user_id": newUserID,
			"code":    code,
		})
		return nil, nil
	}

	txCtx, err := a.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	txUsers := a.uow.GetUserRepository(txCtx)
	now := a.timeProvider.Now()

	bound, err := txUsers.SetReferredBy(txCtx, newUserID, referrer.ID, code, now)
	if err != nil {
		_ = a.uow.Rollback(txCtx)
		return nil, err
	}
	if !bound {
		// Already attributed. The original referrer stays; this call is a no-op.
		_ = a.uow.Rollback(txCtx)
		a.logger.Info("User already attributed, keeping original referrer", map[string]any{
			"user_id": newUserID,
		})
		return nil, nil
	}

	if err := txUsers.IncrementReferralCount(txCtx, referrer.ID, now); err != nil {
		_ = a.uow.Rollback(txCtx)
		return nil, err
	}

	if err := a.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	a.logger.Info("Referral attributed", map[string]any{
		"user_id":     newUserID,
		"referrer_id": referrer.ID,
		"code":        code,
	})

	referrerID := referrer.ID
	return &referrerID, nil
}
