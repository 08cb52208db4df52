package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeStore is an in-memory stand-in for the two repositories.
type fakeStore struct {
	accounts  map[uint64]*model.Account
	donations []model.Donation
	nextID    uint64

	// createErr, when set, fails the next account create once.
	createErr error
	// missFindByName makes that many FindByName calls miss, to simulate a
	// row appearing between lookup and insert.
	missFindByName int
}

func newFakeStore() *fakeStore {
	return &fakeStore{accounts: make(map[uint64]*model.Account)}
}

func (s *fakeStore) addAccount(name string, referrerID *uint64) *model.Account {
	s.nextID++
	if referrerID != nil {
		// Store a copy so callers can reuse the same variable (e.g. a loop
		// cursor) without every account aliasing one pointer.
		v := *referrerID
		referrerID = &v
	}
	a := &model.Account{
		ID:           s.nextID,
		Name:         name,
		ReferrerID:   referrerID,
		ReferralCode: uuid.NewString(),
	}
	s.accounts[a.ID] = a
	return a
}

func (s *fakeStore) addDonation(accountID uint64, amount string) {
	s.nextID++
	s.donations = append(s.donations, model.Donation{
		ID:        s.nextID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString(amount),
	})
}

type fakeAccounts struct{ s *fakeStore }

func (f *fakeAccounts) FindByName(_ context.Context, name string) (*model.Account, error) {
	if f.s.missFindByName > 0 {
		f.s.missFindByName--
		return nil, gorm.ErrRecordNotFound
	}
	for _, a := range f.s.accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccounts) FindByID(_ context.Context, id uint64) (*model.Account, error) {
	if a, ok := f.s.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccounts) FindByReferralCode(_ context.Context, code string) (*model.Account, error) {
	for _, a := range f.s.accounts {
		if a.ReferralCode == code {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	if f.s.createErr != nil {
		err := f.s.createErr
		f.s.createErr = nil
		return err
	}
	for _, existing := range f.s.accounts {
		if existing.Name == a.Name {
			return repository.ErrNameTaken
		}
	}
	f.s.nextID++
	a.ID = f.s.nextID
	f.s.accounts[a.ID] = a
	return nil
}

func (f *fakeAccounts) Exists(_ context.Context, id uint64) (bool, error) {
	_, ok := f.s.accounts[id]
	return ok, nil
}

func (f *fakeAccounts) ListChildren(_ context.Context, parentIDs []uint64) ([]model.Account, error) {
	parents := make(map[uint64]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = struct{}{}
	}
	var out []model.Account
	for _, a := range f.s.accounts {
		if a.ReferrerID == nil {
			continue
		}
		if _, ok := parents[*a.ReferrerID]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeDonations struct{ s *fakeStore }

func (f *fakeDonations) Create(_ context.Context, d *model.Donation) error {
	f.s.nextID++
	d.ID = f.s.nextID
	f.s.donations = append(f.s.donations, *d)
	return nil
}

func (f *fakeDonations) ListByAccount(_ context.Context, accountID uint64) ([]model.Donation, error) {
	var out []model.Donation
	for _, d := range f.s.donations {
		if d.AccountID == accountID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonations) SumByAccount(_ context.Context, accountID uint64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range f.s.donations {
		if d.AccountID == accountID {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

func (f *fakeDonations) TotalsByAccounts(_ context.Context, accountIDs []uint64) (map[uint64]decimal.Decimal, error) {
	want := make(map[uint64]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		want[id] = struct{}{}
	}
	totals := make(map[uint64]decimal.Decimal)
	for _, d := range f.s.donations {
		if _, ok := want[d.AccountID]; !ok {
			continue
		}
		totals[d.AccountID] = totals[d.AccountID].Add(d.Amount)
	}
	return totals, nil
}
