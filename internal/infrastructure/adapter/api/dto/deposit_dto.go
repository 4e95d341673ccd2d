package dto

// SubmitDepositRequest represents a deposit submission payload.
// Amount is the plan tier in whole dollars.
type SubmitDepositRequest struct {
	Amount          int64  `json:"amount" binding:"required"`
	Currency        string `json:"currency"`
	TransactionHash string `json:"transactionHash" binding:"required"`
}

// DepositResponse represents one deposit
type DepositResponse struct {
	ID              uint64 `json:"id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	TransactionHash string `json:"transactionHash"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	ConfirmedAt     string `json:"confirmedAt,omitempty"`
}

// ConfirmDepositResponse represents the result of an admin confirmation.
// Reward is present only when the confirmation created a referral reward.
type ConfirmDepositResponse struct {
	Deposit DepositResponse `json:"deposit"`
	Reward  *RewardResponse `json:"reward,omitempty"`
}
