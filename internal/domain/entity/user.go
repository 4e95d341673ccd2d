package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
)

// Role identifies the capability level of a caller
type Role string

// Roles
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account with its financial state.
// Balance and TotalEarned are cents; TotalEarned moves in lockstep with
// every balance credit and never decreases.
type User struct {
	ID             uint64
	Email          string
	PasswordHash   string
	Role           Role
	ReferralCode   string  // canonical 8-char code, empty until lazily generated
	ReferredByID   *uint64 // set at most once, at registration
	ReferredByCode string
	ReferralCount  uint64
	Balance        int64
	TotalEarned    int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser creates a new user with the given credentials
func NewUser(email, passwordHash string, role Role, timeProvider coreport.TimeProvider) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errs.ErrInvalidEmail
	}
	if role != RoleUser && role != RoleAdmin {
		role = RoleUser
	}

	now := timeProvider.Now()
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsAdmin reports whether the user holds the admin capability
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasReferrer reports whether this user was attributed to a referrer
func (u *User) HasReferrer() bool {
	return u.ReferredByID != nil
}

// HasCanonicalReferralCode reports whether the stored code already matches
// the canonical format. Legacy UUID codes and empty codes both return false
// and are replaced through the same lazy generation path.
func (u *User) HasCanonicalReferralCode() bool {
	return IsValidReferralCode(u.ReferralCode)
}

// GetBalance returns the balance formatted with 2 decimal places
func (u *User) GetBalance() string {
	return AmountInCentsToString(u.Balance)
}

// GetTotalEarned returns total earnings formatted with 2 decimal places
func (u *User) GetTotalEarned() string {
	return AmountInCentsToString(u.TotalEarned)
}
