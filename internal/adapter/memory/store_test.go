package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

func seedCampaign(t *testing.T, s *Store, total, allocated int64) *domain.Campaign {
	t.Helper()
	c := &domain.Campaign{
		ID:           uuid.New(),
		AdvertiserID: uuid.New(),
		Title:        "Test campaign",
		CampaignType: domain.CampaignTypeProduct,
		Budget:       domain.Budget{Total: total, Allocated: allocated},
		Status:       domain.CampaignStatusActive,
	}
	require.NoError(t, s.CreateCampaign(context.Background(), c))
	return c
}

func seedOrder(t *testing.T, s *Store, c *domain.Campaign, price int64) *domain.Order {
	t.Helper()
	o := &domain.Order{
		ID:           uuid.New(),
		CampaignID:   c.ID,
		BloggerID:    uuid.New(),
		AdvertiserID: c.AdvertiserID,
		ContentType:  domain.ContentTypePost,
		Price:        price,
		Status:       domain.OrderStatusPending,
		Deadline:     time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, s.CreateOrder(context.Background(), o))
	return o
}

func TestReserveRespectsCeiling(t *testing.T) {
	s := NewStore()
	c := seedCampaign(t, s, 1000, 999)

	o := &domain.Order{
		ID:           uuid.New(),
		CampaignID:   c.ID,
		BloggerID:    uuid.New(),
		AdvertiserID: c.AdvertiserID,
		ContentType:  domain.ContentTypePost,
		Price:        2,
		Status:       domain.OrderStatusPending,
		Deadline:     time.Now().Add(time.Hour),
	}
	err := s.CreateOrder(context.Background(), o)
	require.ErrorIs(t, err, domain.ErrInsufficientBudget)

	// the failed creation left neither order nor budget change behind
	_, err = s.GetOrder(context.Background(), o.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	got, err := s.GetCampaign(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, int64(999), got.Budget.Allocated)

	// one last unit still fits
	o.Price = 1
	require.NoError(t, s.CreateOrder(context.Background(), o))
	got, err = s.GetCampaign(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), got.Budget.Allocated)
}

func TestReleaseBelowZeroFails(t *testing.T) {
	s := NewStore()
	c := seedCampaign(t, s, 1000, 0)
	o := seedOrder(t, s, c, 100)

	// forge a release larger than allocated through the update closure
	_, err := s.UpdateOrder(context.Background(), o.ID, func(_ *domain.Order, ledger port.BudgetLedger) error {
		return ledger.Release(context.Background(), c.ID, 500)
	})
	require.ErrorIs(t, err, domain.ErrInvariantViolation)

	got, err := s.GetCampaign(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), got.Budget.Allocated)
}

func TestMarkSpentBoundedByAllocated(t *testing.T) {
	s := NewStore()
	c := seedCampaign(t, s, 1000, 0)
	o := seedOrder(t, s, c, 100)

	_, err := s.UpdateOrder(context.Background(), o.ID, func(_ *domain.Order, ledger port.BudgetLedger) error {
		return ledger.MarkSpent(context.Background(), c.ID, 200)
	})
	require.ErrorIs(t, err, domain.ErrInvariantViolation)

	got, err := s.GetCampaign(context.Background(), c.ID)
	require.NoError(t, err)
	require.Zero(t, got.Budget.Spent)
}

func TestUpdateOrderRollsBackOnError(t *testing.T) {
	s := NewStore()
	c := seedCampaign(t, s, 1000, 0)
	o := seedOrder(t, s, c, 100)

	boom := errors.New("boom")
	_, err := s.UpdateOrder(context.Background(), o.ID, func(ord *domain.Order, ledger port.BudgetLedger) error {
		if err := ord.Reject(ord.BloggerID, "nope"); err != nil {
			return err
		}
		if err := ledger.Release(context.Background(), c.ID, ord.Price); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// neither the status change nor the release survived
	got, err := s.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPending, got.Status)
	gotC, err := s.GetCampaign(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), gotC.Budget.Allocated)
}

func TestUpdateUnknownOrder(t *testing.T) {
	s := NewStore()
	_, err := s.UpdateOrder(context.Background(), uuid.New(), func(_ *domain.Order, _ port.BudgetLedger) error {
		return nil
	})
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListOrdersPagination(t *testing.T) {
	s := NewStore()
	c := seedCampaign(t, s, 10_000, 0)
	bloggerID := uuid.New()
	for i := 0; i < 5; i++ {
		o := &domain.Order{
			ID:           uuid.New(),
			CampaignID:   c.ID,
			BloggerID:    bloggerID,
			AdvertiserID: c.AdvertiserID,
			ContentType:  domain.ContentTypeStory,
			Price:        100,
			Status:       domain.OrderStatusPending,
			Deadline:     time.Now().Add(time.Hour),
		}
		require.NoError(t, s.CreateOrder(context.Background(), o))
	}

	orders, total, err := s.ListOrders(context.Background(), port.OrderFilter{
		BloggerID: &bloggerID,
		Page:      2,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, orders, 2)

	orders, total, err = s.ListOrders(context.Background(), port.OrderFilter{
		BloggerID: &bloggerID,
		Page:      4,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Empty(t, orders)
}
