package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/repository"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrInvalidName = errors.New("invalid name")

type AccountService interface {
	// Login finds the account by name or creates it. The referrer of an
	// existing account is never rewritten. The bool reports whether the
	// account was created by this call.
	Login(ctx context.Context, name string, referrerID *uint64, referralCode string) (*model.Account, bool, error)
	Get(ctx context.Context, id uint64) (*model.Account, error)
	ReferralLink(baseURL string, a *model.Account) string
}

type accountService struct {
	repo repository.AccountRepository
}

func NewAccountService(repo repository.AccountRepository) AccountService {
	return &accountService{repo: repo}
}

func (s *accountService) Login(ctx context.Context, name string, referrerID *uint64, referralCode string) (*model.Account, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 120 {
		return nil, false, ErrInvalidName
	}

	a, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return a, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	refID, err := s.resolveReferrer(ctx, referrerID, referralCode)
	if err != nil {
		return nil, false, err
	}

	a = &model.Account{
		Name:         name,
		ReferrerID:   refID,
		ReferralCode: uuid.NewString(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNameTaken) {
			// Lost a concurrent create of the same name; fall back to the
			// row that won.
			existing, lookupErr := s.repo.FindByName(ctx, name)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return a, true, nil
}

func (s *accountService) resolveReferrer(ctx context.Context, referrerID *uint64, referralCode string) (*uint64, error) {
	if referrerID != nil {
		ok, err := s.repo.Exists(ctx, *referrerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotFound
		}
		return referrerID, nil
	}
	if code := strings.TrimSpace(referralCode); code != "" {
		ref, err := s.repo.FindByReferralCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &ref.ID, nil
	}
	return nil, nil
}

func (s *accountService) Get(ctx context.Context, id uint64) (*model.Account, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *accountService) ReferralLink(baseURL string, a *model.Account) string {
	return strings.TrimRight(baseURL, "/") + "/?ref=" + a.ReferralCode
}
