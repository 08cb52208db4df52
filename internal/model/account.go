package model

import "time"

// Account is a registered user. ReferrerID points at the account whose
// referral link this user signed up through; nil for root accounts. The
// referrer relation is assumed to form a forest.
type Account struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;size:120;uniqueIndex;not null"`
	ReferrerID   *uint64   `gorm:"column:referrer_id;index"`
	ReferralCode string    `gorm:"column:referral_code;size:36;uniqueIndex;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Account) TableName() string {
	return "accounts"
}
