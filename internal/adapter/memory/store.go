package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

// Store is a mutex-guarded in-memory implementation of the order and
// campaign repositories. One mutex is the transaction mechanism: every
// operation stages its mutations on copies and applies them only after
// all checks pass, so failed operations leave no trace, matching the
// commit-or-rollback contract of the SQL adapter.
type Store struct {
	mu        sync.Mutex
	campaigns map[uuid.UUID]*domain.Campaign
	orders    map[uuid.UUID]*domain.Order
	now       func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		campaigns: make(map[uuid.UUID]*domain.Campaign),
		orders:    make(map[uuid.UUID]*domain.Order),
		now:       time.Now,
	}
}

// memLedger stages budget mutations for one operation. Staged budgets
// shadow the stored ones until commit.
type memLedger struct {
	s      *Store
	staged map[uuid.UUID]domain.Budget
}

func newMemLedger(s *Store) *memLedger {
	return &memLedger{s: s, staged: make(map[uuid.UUID]domain.Budget)}
}

func (l *memLedger) budget(campaignID uuid.UUID) (domain.Budget, error) {
	if b, ok := l.staged[campaignID]; ok {
		return b, nil
	}
	c, ok := l.s.campaigns[campaignID]
	if !ok {
		return domain.Budget{}, domain.ErrCampaignNotFound
	}
	return c.Budget, nil
}

func (l *memLedger) Reserve(_ context.Context, campaignID uuid.UUID, amount int64) error {
	b, err := l.budget(campaignID)
	if err != nil {
		return err
	}
	if amount > b.Available() {
		return domain.ErrInsufficientBudget
	}
	b.Allocated += amount
	if b.Allocated > b.Total {
		return fmt.Errorf("%w: campaign %s allocated %d exceeds total %d",
			domain.ErrInvariantViolation, campaignID, b.Allocated, b.Total)
	}
	l.staged[campaignID] = b
	return nil
}

func (l *memLedger) Release(_ context.Context, campaignID uuid.UUID, amount int64) error {
	b, err := l.budget(campaignID)
	if err != nil {
		return err
	}
	if b.Allocated < amount {
		return fmt.Errorf("%w: campaign %s release %d below allocated %d",
			domain.ErrInvariantViolation, campaignID, amount, b.Allocated)
	}
	b.Allocated -= amount
	l.staged[campaignID] = b
	return nil
}

func (l *memLedger) MarkSpent(_ context.Context, campaignID uuid.UUID, amount int64) error {
	b, err := l.budget(campaignID)
	if err != nil {
		return err
	}
	if b.Spent+amount > b.Allocated {
		return fmt.Errorf("%w: campaign %s spent %d would exceed allocated %d",
			domain.ErrInvariantViolation, campaignID, b.Spent+amount, b.Allocated)
	}
	b.Spent += amount
	l.staged[campaignID] = b
	return nil
}

func (l *memLedger) commit() {
	for id, b := range l.staged {
		l.s.campaigns[id].Budget = b
	}
}

// CreateOrder implements port.OrderRepository.
func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[order.CampaignID]
	if !ok || c.AdvertiserID != order.AdvertiserID {
		return domain.ErrCampaignNotFound
	}
	if order.Price > c.Budget.Available() {
		return domain.ErrInsufficientBudget
	}

	ledger := newMemLedger(s)
	if err := ledger.Reserve(ctx, order.CampaignID, order.Price); err != nil {
		return err
	}

	now := s.now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders[order.ID] = cloneOrder(order)
	ledger.commit()
	return nil
}

// UpdateOrder implements port.OrderRepository. fn runs against a copy
// of the order; nothing is applied unless fn succeeds.
func (s *Store) UpdateOrder(ctx context.Context, id uuid.UUID, fn func(o *domain.Order, ledger port.BudgetLedger) error) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o := cloneOrder(stored)
	ledger := newMemLedger(s)
	if err := fn(o, ledger); err != nil {
		return nil, err
	}
	o.UpdatedAt = s.now().UTC()
	s.orders[id] = cloneOrder(o)
	ledger.commit()
	return o, nil
}

// GetOrder implements port.OrderRepository.
func (s *Store) GetOrder(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

// ListOrders implements port.OrderRepository.
func (s *Store) ListOrders(_ context.Context, filter port.OrderFilter) ([]domain.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Order, 0)
	for _, o := range s.orders {
		if filter.BloggerID != nil && o.BloggerID != *filter.BloggerID {
			continue
		}
		if filter.AdvertiserID != nil && o.AdvertiserID != *filter.AdvertiserID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		matched = append(matched, *cloneOrder(o))
	}
	slices.SortFunc(matched, func(a, b domain.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	total := int64(len(matched))
	return page(matched, filter.Page, filter.Limit), total, nil
}

// CreateCampaign implements port.CampaignRepository.
func (s *Store) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.campaigns[c.ID] = cloneCampaign(c)
	return nil
}

// GetCampaign implements port.CampaignRepository.
func (s *Store) GetCampaign(_ context.Context, id uuid.UUID) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	return cloneCampaign(c), nil
}

// ListCampaigns implements port.CampaignRepository.
func (s *Store) ListCampaigns(_ context.Context, filter port.CampaignFilter) ([]domain.Campaign, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Campaign, 0)
	for _, c := range s.campaigns {
		if c.AdvertiserID != filter.AdvertiserID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		matched = append(matched, *cloneCampaign(c))
	}
	slices.SortFunc(matched, func(a, b domain.Campaign) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	total := int64(len(matched))
	return page(matched, filter.Page, filter.Limit), total, nil
}

// UpdateCampaignStatus implements port.CampaignRepository.
func (s *Store) UpdateCampaignStatus(_ context.Context, id, advertiserID uuid.UUID, status string) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok || c.AdvertiserID != advertiserID {
		return nil, domain.ErrCampaignNotFound
	}
	c.Status = status
	c.UpdatedAt = s.now().UTC()
	return cloneCampaign(c), nil
}

func page[T any](items []T, pageNum, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := (pageNum - 1) * limit
	if start < 0 {
		start = 0
	}
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.ContentURLs = slices.Clone(o.ContentURLs)
	cp.PlatformURLs = slices.Clone(o.PlatformURLs)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

func cloneCampaign(c *domain.Campaign) *domain.Campaign {
	cp := *c
	if c.StartDate != nil {
		t := *c.StartDate
		cp.StartDate = &t
	}
	if c.EndDate != nil {
		t := *c.EndDate
		cp.EndDate = &t
	}
	return &cp
}
