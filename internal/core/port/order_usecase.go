package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
)

// CreateOrderInput carries the advertiser's request to contract a
// blogger against a campaign. Price is in integer currency units.
type CreateOrderInput struct {
	CampaignID   uuid.UUID
	BloggerID    uuid.UUID
	AdvertiserID uuid.UUID
	ContentType  string
	Description  string
	Requirements string
	Price        int64
	Deadline     time.Time
}

// SubmitOrderInput carries the blogger's deliverables.
type SubmitOrderInput struct {
	OrderID      uuid.UUID
	BloggerID    uuid.UUID
	ContentURLs  []string
	PlatformURLs []string
}

// ListOrdersInput paginates a user's orders with an optional status
// filter.
type ListOrdersInput struct {
	UserID uuid.UUID
	Status string
	Page   int
	Limit  int
}

// OrderPage is one page of a listing.
type OrderPage struct {
	Orders []domain.Order
	Total  int64
	Page   int
	Limit  int
}

// OrderUseCase defines the order workflow exposed to the HTTP layer.
// Every mutating operation is a guarded state transition; budget side
// effects commit in the same atomic unit as the status change.
type OrderUseCase interface {
	// CreateOrder validates the input, creates a pending order and
	// reserves its price on the campaign budget atomically. Errors:
	// *domain.ValidationError, domain.ErrCampaignNotFound,
	// domain.ErrInsufficientBudget.
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)

	// AcceptOrder moves a pending order to in_progress. Blogger only.
	AcceptOrder(ctx context.Context, orderID, bloggerID uuid.UUID) (*domain.Order, error)

	// RejectOrder cancels a pending order and releases the reserved
	// budget in the same atomic unit. Blogger only.
	RejectOrder(ctx context.Context, orderID, bloggerID uuid.UUID, reason string) (*domain.Order, error)

	// SubmitOrder moves an in_progress order to review, storing at
	// least one content URL. Blogger only.
	SubmitOrder(ctx context.Context, in SubmitOrderInput) (*domain.Order, error)

	// ApproveOrder completes a reviewed order, stamps the completion
	// time and marks the price as spent on the campaign budget.
	// Advertiser only.
	ApproveOrder(ctx context.Context, orderID, advertiserID uuid.UUID) (*domain.Order, error)

	// GetOrder returns the order to a participant or an admin; anyone
	// else gets domain.ErrOrderNotFound.
	GetOrder(ctx context.Context, orderID uuid.UUID, actor domain.UserContext) (*domain.Order, error)

	// ListBloggerOrders returns the blogger's orders, newest first.
	ListBloggerOrders(ctx context.Context, in ListOrdersInput) (*OrderPage, error)

	// ListAdvertiserOrders returns the advertiser's orders, newest
	// first.
	ListAdvertiserOrders(ctx context.Context, in ListOrdersInput) (*OrderPage, error)
}
