package model

import (
	"time"
)

// ReferralReward represents the database model for referral rewards.
// (ReferrerID, ReferredUserID) carries a unique index: one reward per pair,
// ever. A non-nil CreditedAt marks the reward as applied to a balance.
type ReferralReward struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	ReferrerID     uint64 `gorm:"not null;index;uniqueIndex:idx_reward_pair"`
	ReferredUserID uint64 `gorm:"not null;uniqueIndex:idx_reward_pair"`
	Recipient      string `gorm:"not null;size:20;default:referrer"`
	Amount         int64  `gorm:"not null"` // cents
	PlanAmount     int64  `gorm:"not null"` // tier in whole dollars
	PlanType       string `gorm:"size:64"`
	Status         string `gorm:"not null;size:20;index"`
	CreatedAt      time.Time `gorm:"not null"`
	PaidAt         *time.Time
	CreditedAt     *time.Time `gorm:"index"`

	Referrer     User `gorm:"foreignKey:ReferrerID;references:ID"`
	ReferredUser User `gorm:"foreignKey:ReferredUserID;references:ID"`
}

// TableName specifies the table name for ReferralReward
func (ReferralReward) TableName() string {
	return "referral_rewards"
}
