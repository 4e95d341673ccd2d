package dto

// AccountSummaryResponse represents the reconciled account totals
type AccountSummaryResponse struct {
	UserID      uint64 `json:"userId"`
	Balance     string `json:"balance"`
	PlanProfit  string `json:"planProfit"`
	TotalProfit string `json:"totalProfit"`
	CanWithdraw bool   `json:"canWithdraw"`
}

// SubmitWithdrawalRequest represents a withdrawal payload. Amount is a
// decimal string with up to 2 decimal places.
type SubmitWithdrawalRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency"`
	Address  string `json:"address" binding:"required"`
}

// WithdrawalResponse represents one withdrawal request
type WithdrawalResponse struct {
	ID        uint64 `json:"id"`
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Address   string `json:"address"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}
