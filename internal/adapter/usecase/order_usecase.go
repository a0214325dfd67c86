package usecase

import (
	"context"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

// Price bounds in integer currency units.
const (
	minOrderPrice = 100
	maxOrderPrice = 1_000_000
)

const (
	maxDescriptionLen  = 2000
	minDescriptionLen  = 10
	maxRequirementsLen = 1000
	maxRejectReasonLen = 500
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// OrderUseCase implements port.OrderUseCase. It validates input and
// orchestrates the repository; all atomicity lives behind the
// repository port.
type OrderUseCase struct {
	orders port.OrderRepository
	now    func() time.Time
}

// NewOrderUseCase creates the order workflow service.
func NewOrderUseCase(orders port.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, now: time.Now}
}

// CreateOrder validates the request and runs the order creation
// transaction: campaign ownership check, budget check, order insert and
// budget reservation as one atomic unit.
func (u *OrderUseCase) CreateOrder(ctx context.Context, in port.CreateOrderInput) (*domain.Order, error) {
	if err := validateCreateOrder(in, u.now()); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:           uuid.New(),
		CampaignID:   in.CampaignID,
		BloggerID:    in.BloggerID,
		AdvertiserID: in.AdvertiserID,
		ContentType:  in.ContentType,
		Description:  in.Description,
		Requirements: in.Requirements,
		Price:        in.Price,
		Status:       domain.OrderStatusPending,
		Deadline:     in.Deadline,
	}
	if err := u.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AcceptOrder moves a pending order to in_progress.
func (u *OrderUseCase) AcceptOrder(ctx context.Context, orderID, bloggerID uuid.UUID) (*domain.Order, error) {
	return u.orders.UpdateOrder(ctx, orderID, func(o *domain.Order, _ port.BudgetLedger) error {
		return o.Accept(bloggerID)
	})
}

// RejectOrder cancels a pending order and releases the reserved budget.
// The status change and the release commit together or not at all.
func (u *OrderUseCase) RejectOrder(ctx context.Context, orderID, bloggerID uuid.UUID, reason string) (*domain.Order, error) {
	if utf8.RuneCountInString(reason) > maxRejectReasonLen {
		return nil, domain.Validationf("reason", "must not exceed %d characters", maxRejectReasonLen)
	}
	return u.orders.UpdateOrder(ctx, orderID, func(o *domain.Order, ledger port.BudgetLedger) error {
		if err := o.Reject(bloggerID, reason); err != nil {
			return err
		}
		return ledger.Release(ctx, o.CampaignID, o.Price)
	})
}

// SubmitOrder moves an in_progress order to review with its
// deliverable URLs.
func (u *OrderUseCase) SubmitOrder(ctx context.Context, in port.SubmitOrderInput) (*domain.Order, error) {
	if len(in.ContentURLs) == 0 {
		return nil, domain.Validationf("contentUrls", "at least one content URL is required")
	}
	if err := validateURLs("contentUrls", in.ContentURLs); err != nil {
		return nil, err
	}
	if err := validateURLs("platformUrls", in.PlatformURLs); err != nil {
		return nil, err
	}
	return u.orders.UpdateOrder(ctx, in.OrderID, func(o *domain.Order, _ port.BudgetLedger) error {
		return o.Submit(in.BloggerID, in.ContentURLs, in.PlatformURLs)
	})
}

// ApproveOrder completes a reviewed order. The completion timestamp and
// the spent-budget bookkeeping commit in the same unit as the status
// change.
func (u *OrderUseCase) ApproveOrder(ctx context.Context, orderID, advertiserID uuid.UUID) (*domain.Order, error) {
	return u.orders.UpdateOrder(ctx, orderID, func(o *domain.Order, ledger port.BudgetLedger) error {
		if err := o.Approve(advertiserID, u.now().UTC()); err != nil {
			return err
		}
		return ledger.MarkSpent(ctx, o.CampaignID, o.Price)
	})
}

// GetOrder returns the order to a participant or an admin. Everyone
// else gets not-found rather than forbidden, so order existence leaks
// nothing.
func (u *OrderUseCase) GetOrder(ctx context.Context, orderID uuid.UUID, actor domain.UserContext) (*domain.Order, error) {
	o, err := u.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Participant(actor.ID) && !actor.IsAdmin() {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// ListBloggerOrders returns the blogger's orders, newest first.
func (u *OrderUseCase) ListBloggerOrders(ctx context.Context, in port.ListOrdersInput) (*port.OrderPage, error) {
	filter, err := listFilter(in)
	if err != nil {
		return nil, err
	}
	filter.BloggerID = &in.UserID
	return u.listOrders(ctx, filter)
}

// ListAdvertiserOrders returns the advertiser's orders, newest first.
func (u *OrderUseCase) ListAdvertiserOrders(ctx context.Context, in port.ListOrdersInput) (*port.OrderPage, error) {
	filter, err := listFilter(in)
	if err != nil {
		return nil, err
	}
	filter.AdvertiserID = &in.UserID
	return u.listOrders(ctx, filter)
}

func (u *OrderUseCase) listOrders(ctx context.Context, filter port.OrderFilter) (*port.OrderPage, error) {
	orders, total, err := u.orders.ListOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &port.OrderPage{Orders: orders, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func listFilter(in port.ListOrdersInput) (port.OrderFilter, error) {
	filter := port.OrderFilter{Page: in.Page, Limit: in.Limit}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		return filter, domain.Validationf("limit", "must be between 1 and %d", maxPageLimit)
	}
	if in.Status != "" {
		if !domain.ValidOrderStatus(in.Status) {
			return filter, domain.Validationf("status", "unknown order status %q", in.Status)
		}
		st := domain.OrderStatus(in.Status)
		filter.Status = &st
	}
	return filter, nil
}

func validateCreateOrder(in port.CreateOrderInput, now time.Time) error {
	if in.CampaignID == uuid.Nil {
		return domain.Validationf("campaignId", "campaign ID is required")
	}
	if in.BloggerID == uuid.Nil {
		return domain.Validationf("bloggerId", "blogger ID is required")
	}
	if in.AdvertiserID == uuid.Nil {
		return domain.Validationf("advertiserId", "advertiser ID is required")
	}
	if !domain.ValidContentType(in.ContentType) {
		return domain.Validationf("contentType", "unknown content type %q", in.ContentType)
	}
	if in.Price < minOrderPrice || in.Price > maxOrderPrice {
		return domain.Validationf("price", "must be between %d and %d", minOrderPrice, maxOrderPrice)
	}
	if in.Deadline.IsZero() {
		return domain.Validationf("deadline", "deadline is required")
	}
	if in.Deadline.Before(now) {
		return domain.Validationf("deadline", "must not be in the past")
	}
	if in.Description != "" {
		if n := utf8.RuneCountInString(in.Description); n < minDescriptionLen || n > maxDescriptionLen {
			return domain.Validationf("description", "must be between %d and %d characters", minDescriptionLen, maxDescriptionLen)
		}
	}
	if utf8.RuneCountInString(in.Requirements) > maxRequirementsLen {
		return domain.Validationf("requirements", "must not exceed %d characters", maxRequirementsLen)
	}
	return nil
}

func validateURLs(field string, urls []string) error {
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return domain.Validationf(field, "%q is not a valid URL", raw)
		}
	}
	return nil
}
