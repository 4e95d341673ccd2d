package migration

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/domain/port/persistence"
)

// SeedDefaultAdmin creates the admin account on first startup. Idempotent:
// an existing account with the configured email is left untouched.
func SeedDefaultAdmin(
	ctx context.Context,
	userRepo persistence.UserRepository,
	email, password string,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) error {
	if email == "" || password == "" {
		logger.Warn("Admin credentials not configured, skipping admin seed", nil)
		return nil
	}

	_, err := userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := entity.NewUser(email, string(hash), entity.RoleAdmin, timeProvider)
	if err != nil {
		return err
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently
		if errors.Is(err, errs.ErrDuplicateUser) {
			return nil
		}
		return err
	}

	logger.Info("Default admin account created", map[string]any{
		"email": email,
	})
	return nil
}
