package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a single contribution by an account. Amount is stored as a
// fixed-point decimal so per-level totals do not drift over large trees.
type Donation struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	AccountID uint64          `gorm:"column:account_id;index;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (Donation) TableName() string {
	return "donations"
}
