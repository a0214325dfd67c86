package port

import (
	"context"

	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
)

// BudgetLedger is the single entry point for mutating a campaign's
// allocated budget. Implementations must apply both operations as
// durable writes inside the surrounding transaction: the new value is
// visible to the next Reserve/Release only after commit.
type BudgetLedger interface {
	// Reserve increases the campaign's allocated budget by amount. It
	// fails with domain.ErrInsufficientBudget when the increment would
	// push allocated past total, checked against the value read inside
	// the same atomic unit.
	Reserve(ctx context.Context, campaignID uuid.UUID, amount int64) error

	// Release decreases the campaign's allocated budget by amount. It
	// fails with domain.ErrInvariantViolation if the decrement would
	// take allocated below zero.
	Release(ctx context.Context, campaignID uuid.UUID, amount int64) error

	// MarkSpent moves amount of the campaign's allocated budget into
	// spent when an order completes. Fails with
	// domain.ErrInvariantViolation if spent would exceed allocated.
	MarkSpent(ctx context.Context, campaignID uuid.UUID, amount int64) error
}

// OrderFilter restricts and paginates order listings. Exactly one of
// BloggerID or AdvertiserID is set by the usecase.
type OrderFilter struct {
	BloggerID    *uuid.UUID
	AdvertiserID *uuid.UUID
	Status       *domain.OrderStatus
	Page         int
	Limit        int
}

// OrderRepository defines persistence for orders. It is an outbound
// port; implementations must be concurrency-safe and enforce all
// serialization through their store's transaction mechanism, not
// in-process locking.
type OrderRepository interface {
	// CreateOrder persists a pending order and reserves its price on
	// the campaign's budget as a single atomic unit. It verifies inside
	// that unit that the campaign exists and belongs to
	// order.AdvertiserID (domain.ErrCampaignNotFound otherwise) and that
	// the price fits the available budget
	// (domain.ErrInsufficientBudget). On any failure nothing is
	// persisted.
	CreateOrder(ctx context.Context, order *domain.Order) error

	// UpdateOrder loads the order inside a transaction, applies fn and
	// persists the result. fn receives the loaded order and a ledger
	// bound to the same transaction, so status changes and budget
	// compensation commit together or not at all. Any error from fn
	// rolls the whole unit back and is returned unwrapped.
	UpdateOrder(ctx context.Context, id uuid.UUID, fn func(o *domain.Order, ledger BudgetLedger) error) (*domain.Order, error)

	// GetOrder returns the order or domain.ErrOrderNotFound.
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// ListOrders returns a page of orders matching the filter, newest
	// first, together with the total match count.
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error)
}
