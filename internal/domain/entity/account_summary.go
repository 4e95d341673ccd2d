package entity

// AccountSummary is the single authoritative view of a user's withdrawable
// funds. Every caller that needs totals consumes this; no endpoint
// re-derives them.
type AccountSummary struct {
	UserID             uint64
	BalanceInCents     int64
	PlanProfitInCents  int64
	TotalProfitInCents int64
	CanWithdraw        bool
}

// GetBalance returns the reconciled balance formatted with 2 decimal places
func (s *AccountSummary) GetBalance() string {
	return AmountInCentsToString(s.BalanceInCents)
}

// GetPlanProfit returns accrued plan profit formatted with 2 decimal places
func (s *AccountSummary) GetPlanProfit() string {
	return AmountInCentsToString(s.PlanProfitInCents)
}

// GetTotalProfit returns balance plus plan profit formatted with 2 decimal places
func (s *AccountSummary) GetTotalProfit() string {
	return AmountInCentsToString(s.TotalProfitInCents)
}
