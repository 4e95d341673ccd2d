package model

import (
	"time"
)

// Withdrawal represents the database model for withdrawal requests
type Withdrawal struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index"`
	Reference string    `gorm:"uniqueIndex;not null;size:64"`
	Amount    int64     `gorm:"not null"` // cents
	Currency  string    `gorm:"not null;size:10"`
	Address   string    `gorm:"not null;size:255"`
	Status    string    `gorm:"not null;size:20;index"`
	CreatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Withdrawal
func (Withdrawal) TableName() string {
	return "withdrawals"
}
