package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReview     OrderStatus = "review"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Content types an order can be contracted for.
const (
	ContentTypePost          = "post"
	ContentTypeStory         = "story"
	ContentTypeReel          = "reel"
	ContentTypeVideo         = "video"
	ContentTypeCollaboration = "collaboration"
)

// orderTransitions is the full transition table. Statuses absent from a
// key's slice are unreachable from it; completed and cancelled are
// terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusReview},
	OrderStatusReview:     {OrderStatusCompleted},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[OrderStatus(s)]
	return ok
}

// ValidContentType reports whether t is a known content type.
func ValidContentType(t string) bool {
	switch t {
	case ContentTypePost, ContentTypeStory, ContentTypeReel, ContentTypeVideo, ContentTypeCollaboration:
		return true
	}
	return false
}

// Order is a single piece of contracted work between one advertiser and
// one blogger, drawn against a campaign's budget. Orders are created
// only through the order creation transaction and are never deleted;
// they only move to a terminal status.
type Order struct {
	ID           uuid.UUID
	CampaignID   uuid.UUID
	BloggerID    uuid.UUID
	AdvertiserID uuid.UUID
	ContentType  string
	Description  string
	Requirements string
	Price        int64
	Status       OrderStatus
	Deadline     time.Time
	ContentURLs  []string
	PlatformURLs []string
	RejectReason string
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o *Order) transition(to OrderStatus) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	return nil
}

// Accept moves a pending order to in_progress. Only the order's blogger
// may accept.
func (o *Order) Accept(bloggerID uuid.UUID) error {
	if o.BloggerID != bloggerID {
		return ErrInvalidTransition
	}
	return o.transition(OrderStatusInProgress)
}

// Reject cancels a pending order. Only the order's blogger may reject.
// The reserved budget must be released in the same atomic unit by the
// caller.
func (o *Order) Reject(bloggerID uuid.UUID, reason string) error {
	if o.BloggerID != bloggerID {
		return ErrInvalidTransition
	}
	if err := o.transition(OrderStatusCancelled); err != nil {
		return err
	}
	o.RejectReason = reason
	return nil
}

// Submit moves an in_progress order to review and stores the
// deliverable URLs. Only the order's blogger may submit.
func (o *Order) Submit(bloggerID uuid.UUID, contentURLs, platformURLs []string) error {
	if o.BloggerID != bloggerID {
		return ErrInvalidTransition
	}
	if err := o.transition(OrderStatusReview); err != nil {
		return err
	}
	o.ContentURLs = contentURLs
	o.PlatformURLs = platformURLs
	return nil
}

// Approve moves a reviewed order to completed and records the
// completion time. Only the campaign's advertiser may approve. A second
// approval fails because the order is no longer in review.
func (o *Order) Approve(advertiserID uuid.UUID, now time.Time) error {
	if o.AdvertiserID != advertiserID {
		return ErrInvalidTransition
	}
	if err := o.transition(OrderStatusCompleted); err != nil {
		return err
	}
	o.CompletedAt = &now
	return nil
}

// Terminal reports whether no further transition is permitted.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// Participant reports whether userID is the order's blogger or
// advertiser.
func (o *Order) Participant(userID uuid.UUID) bool {
	return o.BloggerID == userID || o.AdvertiserID == userID
}
