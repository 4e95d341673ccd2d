package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance    = 4001
	CodeInvalidAmount          = 4002
	CodeInvalidUserID          = 4003
	CodeInvalidPlanAmount      = 4004
	CodeInvalidReferralCode    = 4005
	CodeConstraintViolation    = 4006
	CodeWithdrawalExceedsTotal = 4007
	CodeInvalidEmail           = 4008
	CodeInvalidTransactionHash = 4009
	CodeInvalidCredentials     = 4010
	CodeInvalidAddress         = 4011
	CodeForbidden              = 4030
	CodeUserNotFound           = 4040
	CodeRewardNotFound         = 4041
	CodeDepositNotFound        = 4042
	CodeDuplicateUser          = 4090
	CodePendingDepositExists   = 4091
	CodePlanAlreadyActive      = 4092
	CodeRewardAlreadyProcessed = 4093
	CodeSelfReferral           = 4094

	// 5xxx - Server errors
	CodeInternalServer          = 5000
	CodeCodeGenerationExhausted = 5030
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a debit would drive the balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when an amount string cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when an amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidPlanAmount is returned when a deposit amount is not one of the plan tiers
	ErrInvalidPlanAmount = errors.New("amount does not match any investment plan tier")

	// ErrInvalidReferralCode is returned when a referral code has an invalid format
	ErrInvalidReferralCode = errors.New("invalid referral code format")

	// ErrInvalidEmail is returned when the email is empty or malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidTransactionHash is returned when a deposit carries no external reference
	ErrInvalidTransactionHash = errors.New("transaction hash cannot be empty")

	// ErrInvalidAddress is returned when a withdrawal destination address is empty
	ErrInvalidAddress = errors.New("withdrawal address cannot be empty")

	// ErrInvalidCredentials is returned when login credentials do not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when the caller lacks the required role
	ErrForbidden = errors.New("operation requires admin privileges")

	// ErrUnauthenticated is returned when no authenticated caller is present
	ErrUnauthenticated = errors.New("authentication required")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrRewardNotFound is returned when the requested referral reward doesn't exist
	ErrRewardNotFound = errors.New("referral reward not found")

	// ErrDepositNotFound is returned when the requested deposit doesn't exist
	ErrDepositNotFound = errors.New("deposit not found")

	// ErrDuplicateUser is returned when a user with the same email already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrPendingDepositExists is returned when the user already has a pending deposit
	ErrPendingDepositExists = errors.New("a pending deposit already exists for this user")

	// ErrPlanAlreadyActive is returned when the user already has a confirmed deposit
	ErrPlanAlreadyActive = errors.New("user already has an active investment plan")

	// ErrRewardAlreadyProcessed is returned when a reward is not in the pending state.
	// Covers both missing rewards and rewards already paid or rejected; all are
	// terminal from the caller's perspective.
	ErrRewardAlreadyProcessed = errors.New("referral reward has already been processed")

	// ErrSelfReferral is returned when a user supplies their own referral code
	ErrSelfReferral = errors.New("users cannot refer themselves")

	// ErrCodeGenerationExhausted is returned when all referral code generation attempts collide
	ErrCodeGenerationExhausted = errors.New("referral code generation attempts exhausted")

	// ErrWithdrawalExceedsTotal is returned when a withdrawal exceeds the withdrawable total
	ErrWithdrawalExceedsTotal = errors.New("withdrawal amount exceeds total profit")

	// ErrWithdrawalNotAllowed is returned when no plan progress row unlocks withdrawal
	ErrWithdrawalNotAllowed = errors.New("withdrawal is not unlocked for this account")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidPlanAmount):
		return CodeInvalidPlanAmount
	case errors.Is(err, ErrInvalidReferralCode):
		return CodeInvalidReferralCode
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, ErrInvalidTransactionHash):
		return CodeInvalidTransactionHash
	case errors.Is(err, ErrInvalidAddress):
		return CodeInvalidAddress
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return CodeInvalidCredentials
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrRewardNotFound):
		return CodeRewardNotFound
	case errors.Is(err, ErrDepositNotFound):
		return CodeDepositNotFound
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrPendingDepositExists):
		return CodePendingDepositExists
	case errors.Is(err, ErrPlanAlreadyActive):
		return CodePlanAlreadyActive
	case errors.Is(err, ErrRewardAlreadyProcessed):
		return CodeRewardAlreadyProcessed
	case errors.Is(err, ErrSelfReferral):
		return CodeSelfReferral
	case errors.Is(err, ErrWithdrawalExceedsTotal), errors.Is(err, ErrWithdrawalNotAllowed):
		return CodeWithdrawalExceedsTotal
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrCodeGenerationExhausted):
		return CodeCodeGenerationExhausted
	default:
		return CodeInternalServer
	}
}

// RewardError represents an error in the referral reward lifecycle
type RewardError struct {
	RewardID       uint64
	ReferrerID     uint64
	ReferredUserID uint64
	Reason         string
	Err            error
}

// Error implements the error interface for RewardError
func (e *RewardError) Error() string {
	return fmt.Sprintf("reward error for reward %d (referrer: %d, referred: %d): %s - %v",
		e.RewardID, e.ReferrerID, e.ReferredUserID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *RewardError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *RewardError) LogFields() map[string]any {
	return map[string]any{
		"error_type":       "reward_error",
		"reward_id":        e.RewardID,
		"referrer_id":      e.ReferrerID,
		"referred_user_id": e.ReferredUserID,
		"reason":           e.Reason,
		"error":            e.Err.Error(),
		"error_code":       ErrorCode(e.Err),
	}
}

// NewRewardError creates a detailed reward lifecycle error
func NewRewardError(rewardID, referrerID, referredUserID uint64, reason string, err error) error {
	return &RewardError{
		RewardID:       rewardID,
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		Reason:         reason,
		Err:            err,
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// CodeGenerationError carries context about exhausted referral code generation
type CodeGenerationError struct {
	UserID   uint64
	Attempts int
	Err      error
}

// Error implements the error interface
func (e *CodeGenerationError) Error() string {
	return fmt.Sprintf("referral code generation failed for user %d after %d attempts: %v",
		e.UserID, e.Attempts, e.Err)
}

// Unwrap returns the underlying error
func (e *CodeGenerationError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrCodeGenerationExhausted
func (e *CodeGenerationError) Is(target error) bool {
	return target == ErrCodeGenerationExhausted
}

// LogFields returns a map of fields for structured logging
func (e *CodeGenerationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "code_generation_exhausted",
		"user_id":    e.UserID,
		"attempts":   e.Attempts,
		"error_code": CodeCodeGenerationExhausted,
	}
}

// NewCodeGenerationError creates a new code generation exhaustion error
func NewCodeGenerationError(userID uint64, attempts int, err error) error {
	return &CodeGenerationError{
		UserID:   userID,
		Attempts: attempts,
		Err:      err,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRewardNotFound) ||
		errors.Is(err, ErrDepositNotFound)
}

// IsConflictError checks if the error describes a state the caller must not blindly retry
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateUser) ||
		errors.Is(err, ErrPendingDepositExists) ||
		errors.Is(err, ErrPlanAlreadyActive) ||
		errors.Is(err, ErrRewardAlreadyProcessed) ||
		errors.Is(err, ErrSelfReferral) ||
		errors.Is(err, ErrConstraintViolation)
}

// IsValidationError checks if the error was caused by invalid caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidPlanAmount) ||
		errors.Is(err, ErrInvalidReferralCode) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidTransactionHash) ||
		errors.Is(err, ErrInvalidAddress)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsForbiddenError checks if the error is an authorization failure
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrUnauthenticated)
}
