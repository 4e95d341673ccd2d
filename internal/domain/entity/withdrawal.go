package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
)

// WithdrawalStatus defines possible status values for a withdrawal
type WithdrawalStatus string

// Withdrawal statuses. Settlement past pending is handled by an external
// operator and is out of scope here.
const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalSettled  WithdrawalStatus = "settled"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Withdrawal represents a request to pay out part of the withdrawable total
type Withdrawal struct {
	ID        uint64
	UserID    uint64
	Reference string // external reference handed to the settlement operator
	Amount    int64  // cents
	Currency  string
	Address   string
	Status    WithdrawalStatus
	CreatedAt time.Time
}

// NewWithdrawal creates a pending withdrawal request
func NewWithdrawal(userID uint64, amountInCents int64, currency, address string, timeProvider coreport.TimeProvider) (*Withdrawal, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if amountInCents <= 0 {
		return nil, errs.ErrNegativeAmount
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errs.ErrInvalidAddress
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USDT"
	}

	return &Withdrawal{
		UserID:    userID,
		Reference: uuid.NewString(),
		Amount:    amountInCents,
		Currency:  currency,
		Address:   address,
		Status:    WithdrawalPending,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// GetAmount returns the withdrawal amount formatted with 2 decimal places
func (w *Withdrawal) GetAmount() string {
	return AmountInCentsToString(w.Amount)
}
