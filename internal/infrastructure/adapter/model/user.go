package model

import (
	"time"
)

// User represents the database model for users. Balance and TotalEarned
// are cents; both are only ever mutated through atomic UPDATE expressions.
type User struct {
	ID             uint64  `gorm:"primaryKey;autoIncrement"`
	Email          string  `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash   string  `gorm:"not null;size:255"`
	Role           string  `gorm:"not null;size:20;default:user"`
	// Uniqueness is enforced by a partial index created in the migration
	// layer; codes are assigned lazily, so empty values must not collide.
	ReferralCode   string  `gorm:"size:64"`
	ReferredByID   *uint64 `gorm:"index"`
	ReferredByCode string  `gorm:"size:64"`
	ReferralCount  uint64  `gorm:"not null;default:0"`
	Balance        int64   `gorm:"not null;default:0"`
	TotalEarned    int64   `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
