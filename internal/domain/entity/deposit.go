package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
)

// DepositStatus defines possible status values for a deposit
type DepositStatus string

// Deposit statuses
const (
	DepositPending   DepositStatus = "pending"
	DepositConfirmed DepositStatus = "confirmed"
	DepositApproved  DepositStatus = "approved"
	DepositRejected  DepositStatus = "rejected"
)

// Deposit represents a claimed funding event for an investment plan.
// The transaction hash is an opaque external reference; nothing here
// verifies it on-chain. Amount is the plan tier in whole dollars,
// AmountInCents the same value in cents for balance arithmetic.
type Deposit struct {
	ID              uint64
	UserID          uint64
	Amount          int64
	AmountInCents   int64
	Currency        string
	TransactionHash string
	Status          DepositStatus
	CreatedAt       time.Time
	ConfirmedAt     *time.Time
}

// NewDeposit creates a pending deposit after validating the plan tier
func NewDeposit(userID uint64, amount int64, currency, transactionHash string, timeProvider coreport.TimeProvider) (*Deposit, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidPlanAmount(amount) {
		return nil, errs.ErrInvalidPlanAmount
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USDT"
	}
	transactionHash = strings.TrimSpace(transactionHash)
	if transactionHash == "" {
		return nil, errs.ErrInvalidTransactionHash
	}

	return &Deposit{
		UserID:          userID,
		Amount:          amount,
		AmountInCents:   DollarsToCents(amount),
		Currency:        currency,
		TransactionHash: transactionHash,
		Status:          DepositPending,
		CreatedAt:       timeProvider.Now(),
	}, nil
}

// IsPending reports whether the deposit awaits confirmation
func (d *Deposit) IsPending() bool {
	return d.Status == DepositPending
}

// IsSettled reports whether the deposit has reached a confirmed or approved state
func (d *Deposit) IsSettled() bool {
	return d.Status == DepositConfirmed || d.Status == DepositApproved
}
