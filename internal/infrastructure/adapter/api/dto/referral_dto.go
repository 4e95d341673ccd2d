package dto

// ReferralCodeResponse carries the user's canonical referral code
type ReferralCodeResponse struct {
	UserID       uint64 `json:"userId"`
	ReferralCode string `json:"referralCode"`
}

// RewardResponse represents one referral reward
type RewardResponse struct {
	ID             uint64 `json:"id"`
	ReferredUserID uint64 `json:"referredUserId"`
	Amount         string `json:"amount"`
	PlanAmount     int64  `json:"planAmount"`
	PlanType       string `json:"planType"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

// ReferralDashboardResponse aggregates the user's referral standing
type ReferralDashboardResponse struct {
	UserID        uint64           `json:"userId"`
	ReferralCode  string           `json:"referralCode"`
	ReferralCount uint64           `json:"referralCount"`
	Rewards       []RewardResponse `json:"rewards"`
}
