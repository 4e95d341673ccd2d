package dto

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	ReferralCode string `json:"referralCode"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful registration or login
type AuthResponse struct {
	UserID uint64 `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token,omitempty"`
}
