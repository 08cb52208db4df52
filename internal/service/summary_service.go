package service

import (
	"context"
	"time"

	"github.com/matanshamai/kassa-viral-fundraiser/internal/repository"
	"github.com/shopspring/decimal"
)

// LevelAggregate summarizes one depth level of a root's referral
// descendants: level 1 is the root's direct referrals.
type LevelAggregate struct {
	Level     int
	UserCount int
	Total     decimal.Decimal
}

type Summary struct {
	UserID    uint64
	UserTotal decimal.Decimal
	Levels    []LevelAggregate
}

type SummaryService interface {
	Summarize(ctx context.Context, rootID uint64) (*Summary, error)
}

type summaryService struct {
	accountRepo  repository.AccountRepository
	donationRepo repository.DonationRepository
	walkTimeout  time.Duration
}

// DefaultWalkTimeout bounds the descendant walk; the tree has no depth limit
// and each level costs one query.
const DefaultWalkTimeout = 10 * time.Second

func NewSummaryService(accountRepo repository.AccountRepository, donationRepo repository.DonationRepository) SummaryService {
	return &summaryService{
		accountRepo:  accountRepo,
		donationRepo: donationRepo,
		walkTimeout:  DefaultWalkTimeout,
	}
}

func (s *summaryService) Summarize(ctx context.Context, rootID uint64) (*Summary, error) {
	ok, err := s.accountRepo.Exists(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	if s.walkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.walkTimeout)
		defer cancel()
	}

	userTotal, err := s.donationRepo.SumByAccount(ctx, rootID)
	if err != nil {
		return nil, err
	}

	levelMembers, err := s.walkDescendants(ctx, rootID)
	if err != nil {
		return nil, err
	}

	var all []uint64
	for _, members := range levelMembers {
		all = append(all, members...)
	}
	totals, err := s.donationRepo.TotalsByAccounts(ctx, all)
	if err != nil {
		return nil, err
	}

	levels := make([]LevelAggregate, 0, len(levelMembers))
	for i, members := range levelMembers {
		total := decimal.Zero
		for _, id := range members {
			total = total.Add(totals[id])
		}
		levels = append(levels, LevelAggregate{
			Level:     i + 1,
			UserCount: len(members),
			Total:     total,
		})
	}

	return &Summary{UserID: rootID, UserTotal: userTotal, Levels: levels}, nil
}

// walkDescendants breadth-first walks the referral tree below root, one
// batched children query per level, and returns the member ids of each
// non-empty level in depth order. The seen set keeps the walk terminating
// even if the referrer graph is corrupted into a cycle; each account is
// assigned the level of its first visit.
func (s *summaryService) walkDescendants(ctx context.Context, rootID uint64) ([][]uint64, error) {
	seen := map[uint64]struct{}{rootID: {}}
	frontier := []uint64{rootID}
	var levelMembers [][]uint64

	for len(frontier) > 0 {
		children, err := s.accountRepo.ListChildren(ctx, frontier)
		if err != nil {
			return nil, err
		}
		var next []uint64
		for _, c := range children {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			next = append(next, c.ID)
		}
		if len(next) == 0 {
			break
		}
		levelMembers = append(levelMembers, next)
		frontier = next
	}
	return levelMembers, nil
}
