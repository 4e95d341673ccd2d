package entity

import (
	"time"

	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
)

// RecipientRole identifies whose balance a reward credits. The recipient is
// an explicit field on the reward, never inferred from the plan type label.
type RecipientRole string

// Recipient roles
const (
	RecipientReferrer     RecipientRole = "referrer"
	RecipientReferredUser RecipientRole = "referred_user"
)

// RewardStatus defines possible status values for a referral reward
type RewardStatus string

// Reward statuses. Paid is terminal; a reward never reverts from it.
const (
	RewardPending  RewardStatus = "pending"
	RewardPaid     RewardStatus = "paid"
	RewardRejected RewardStatus = "rejected"
)

// Plan type labels. Purely descriptive; lifecycle decisions never parse them.
const (
	PlanTypeStandard          = "Standard Plan"
	PlanTypeReferredUserBonus = "Referred User Bonus"
)

// ReferralReward is the central unit of the reward lifecycle. At most one
// reward per (referrer, referred user) pair ever reaches paid status.
// CreditedAt marks that the amount has been folded into the recipient's
// balance; it is the only credited marker.
type ReferralReward struct {
	ID             uint64
	ReferrerID     uint64
	ReferredUserID uint64
	Recipient      RecipientRole
	Amount         int64 // cents
	PlanAmount     int64 // tier in whole dollars
	PlanType       string
	Status         RewardStatus
	CreatedAt      time.Time
	PaidAt         *time.Time
	CreditedAt     *time.Time
}

// NewReferralReward builds a pending referrer reward for a confirmed
// deposit at the given plan tier. Returns (nil, false) for tiers outside
// the reward table: no record must be created for those.
func NewReferralReward(referrerID, referredUserID uint64, planAmount int64, timeProvider coreport.TimeProvider) (*ReferralReward, bool) {
	rewardDollars := ReferralRewardFor(planAmount)
	if rewardDollars == 0 || referrerID == 0 || referredUserID == 0 {
		return nil, false
	}

	return &ReferralReward{
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		Recipient:      RecipientReferrer,
		Amount:         DollarsToCents(rewardDollars),
		PlanAmount:     planAmount,
		PlanType:       PlanTypeStandard,
		Status:         RewardPending,
		CreatedAt:      timeProvider.Now(),
	}, true
}

// RecipientID returns the user whose balance this reward credits
func (r *ReferralReward) RecipientID() uint64 {
	if r.Recipient == RecipientReferredUser {
		return r.ReferredUserID
	}
	return r.ReferrerID
}

// IsPending reports whether the reward still awaits approval
func (r *ReferralReward) IsPending() bool {
	return r.Status == RewardPending
}

// IsCredited reports whether the reward has been folded into the recipient's balance
func (r *ReferralReward) IsCredited() bool {
	return r.CreditedAt != nil
}

// GetAmount returns the reward amount formatted with 2 decimal places
func (r *ReferralReward) GetAmount() string {
	return AmountInCentsToString(r.Amount)
}
