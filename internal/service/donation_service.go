package service

import (
	"context"
	"errors"

	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/repository"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

type DonationService interface {
	Record(ctx context.Context, accountID uint64, amount decimal.Decimal) (*model.Donation, error)
	ListByAccount(ctx context.Context, accountID uint64) ([]model.Donation, error)
	Total(ctx context.Context, accountID uint64) (decimal.Decimal, error)
}

type donationService struct {
	donationRepo repository.DonationRepository
	accountRepo  repository.AccountRepository
}

func NewDonationService(donationRepo repository.DonationRepository, accountRepo repository.AccountRepository) DonationService {
	return &donationService{donationRepo: donationRepo, accountRepo: accountRepo}
}

func (s *donationService) Record(ctx context.Context, accountID uint64, amount decimal.Decimal) (*model.Donation, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	// The amount column is DECIMAL(14,2); reject what it cannot hold exactly.
	if !amount.Equal(amount.Round(2)) || amount.GreaterThan(decimal.New(1, 12)) {
		return nil, ErrInvalidAmount
	}
	ok, err := s.accountRepo.Exists(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	d := &model.Donation{
		AccountID: accountID,
		Amount:    amount,
	}
	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *donationService) ListByAccount(ctx context.Context, accountID uint64) ([]model.Donation, error) {
	return s.donationRepo.ListByAccount(ctx, accountID)
}

func (s *donationService) Total(ctx context.Context, accountID uint64) (decimal.Decimal, error) {
	return s.donationRepo.SumByAccount(ctx, accountID)
}
