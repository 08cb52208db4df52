package repository

import (
	"context"

	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(ctx context.Context, d *model.Donation) error
	ListByAccount(ctx context.Context, accountID uint64) ([]model.Donation, error)
	// SumByAccount totals the donations of exactly that account; an account
	// with no donations sums to zero.
	SumByAccount(ctx context.Context, accountID uint64) (decimal.Decimal, error)
	// TotalsByAccounts is the batched form. Accounts without donations are
	// absent from the result map.
	TotalsByAccounts(ctx context.Context, accountIDs []uint64) (map[uint64]decimal.Decimal, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *model.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *donationRepository) ListByAccount(ctx context.Context, accountID uint64) ([]model.Donation, error) {
	var list []model.Donation
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *donationRepository) SumByAccount(ctx context.Context, accountID uint64) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Donation{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("account_id = ?", accountID).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *donationRepository) TotalsByAccounts(ctx context.Context, accountIDs []uint64) (map[uint64]decimal.Decimal, error) {
	totals := make(map[uint64]decimal.Decimal, len(accountIDs))
	if len(accountIDs) == 0 {
		return totals, nil
	}
	var rows []struct {
		AccountID uint64
		Total     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Donation{}).
		Select("account_id, SUM(amount) AS total").
		Where("account_id IN ?", accountIDs).
		Group("account_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		totals[row.AccountID] = row.Total
	}
	return totals, nil
}
