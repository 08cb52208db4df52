package repository

import (
	"context"
	"errors"

	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"gorm.io/gorm"
)

// ErrNameTaken is returned when an account name collides with an existing
// row's unique index.
var ErrNameTaken = errors.New("account name already taken")

type AccountRepository interface {
	FindByName(ctx context.Context, name string) (*model.Account, error)
	FindByID(ctx context.Context, id uint64) (*model.Account, error)
	FindByReferralCode(ctx context.Context, code string) (*model.Account, error)
	Create(ctx context.Context, a *model.Account) error
	Exists(ctx context.Context, id uint64) (bool, error)
	// ListChildren returns every account whose referrer is one of parentIDs.
	ListChildren(ctx context.Context, parentIDs []uint64) ([]model.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByName(ctx context.Context, name string) (*model.Account, error) {
	var a model.Account
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uint64) (*model.Account, error) {
	var a model.Account
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) FindByReferralCode(ctx context.Context, code string) (*model.Account, error) {
	var a model.Account
	if err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) Create(ctx context.Context, a *model.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *accountRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepository) ListChildren(ctx context.Context, parentIDs []uint64) ([]model.Account, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var list []model.Account
	if err := r.db.WithContext(ctx).
		Where("referrer_id IN ?", parentIDs).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
