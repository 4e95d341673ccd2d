package model

import (
	"time"
)

// Deposit represents the database model for deposits. The
// one-pending-deposit-per-user invariant is backed by a partial unique
// index created in the migration package.
type Deposit struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	UserID          uint64    `gorm:"not null;index"`
	Amount          int64     `gorm:"not null"` // plan tier in whole dollars
	AmountInCents   int64     `gorm:"not null"`
	Currency        string    `gorm:"not null;size:10"`
	TransactionHash string    `gorm:"not null;size:255"`
	Status          string    `gorm:"not null;size:20;index"`
	CreatedAt       time.Time `gorm:"not null"`
	ConfirmedAt     *time.Time

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Deposit
func (Deposit) TableName() string {
	return "deposits"
}
