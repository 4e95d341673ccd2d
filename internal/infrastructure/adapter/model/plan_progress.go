package model

import (
	"time"
)

// PlanProgress represents the database model for per-plan profit accrual.
// (UserID, PlanAmount) is the composite key behind the upsert semantics.
type PlanProgress struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"not null;uniqueIndex:idx_user_plan"`
	PlanAmount  int64  `gorm:"not null;uniqueIndex:idx_user_plan"`
	Profit      int64  `gorm:"not null;default:0"` // cents
	RoundCount  int    `gorm:"not null;default:0"`
	CanWithdraw bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for PlanProgress
func (PlanProgress) TableName() string {
	return "user_plan_progress"
}
