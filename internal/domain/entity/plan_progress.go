package entity

import "time"

// PlanProgress tracks profit accrual for one (user, plan tier) pair.
// Profit is in cents and is mutated by the external accrual job; this core
// only reads it for aggregation and drains it during withdrawal top-up.
// (userID, planAmount) is unique, so rows are created with upsert semantics.
type PlanProgress struct {
	ID         uint64
	UserID     uint64
	PlanAmount int64 // tier in whole dollars
	Profit     int64 // cents
	RoundCount int
	CanWithdraw bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UnlocksWithdrawal reports whether this row satisfies the withdrawal
// eligibility criteria. Reward money alone never unlocks withdrawal;
// eligibility is plan-progress-gated only.
func (p *PlanProgress) UnlocksWithdrawal() bool {
	return p.CanWithdraw && p.Profit > 0 && p.RoundCount > 0
}

// GetProfit returns accrued profit formatted with 2 decimal places
func (p *PlanProgress) GetProfit() string {
	return AmountInCentsToString(p.Profit)
}
