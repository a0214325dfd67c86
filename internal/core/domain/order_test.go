package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newPendingOrder() *Order {
	return &Order{
		ID:           uuid.New(),
		CampaignID:   uuid.New(),
		BloggerID:    uuid.New(),
		AdvertiserID: uuid.New(),
		ContentType:  ContentTypePost,
		Price:        25_000,
		Status:       OrderStatusPending,
		Deadline:     time.Now().Add(24 * time.Hour),
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusInProgress, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusReview, false},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusInProgress, OrderStatusReview, true},
		{OrderStatusInProgress, OrderStatusCompleted, false},
		{OrderStatusInProgress, OrderStatusCancelled, false},
		{OrderStatusReview, OrderStatusCompleted, true},
		{OrderStatusReview, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusReview, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusInProgress, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAcceptOrder(t *testing.T) {
	o := newPendingOrder()
	require.NoError(t, o.Accept(o.BloggerID))
	require.Equal(t, OrderStatusInProgress, o.Status)
}

func TestAcceptOrderWrongActor(t *testing.T) {
	o := newPendingOrder()
	err := o.Accept(uuid.New())
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, OrderStatusPending, o.Status)
}

func TestAcceptOrderWrongStatus(t *testing.T) {
	o := newPendingOrder()
	o.Status = OrderStatusReview
	err := o.Accept(o.BloggerID)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, OrderStatusReview, o.Status)
}

func TestRejectOrder(t *testing.T) {
	o := newPendingOrder()
	require.NoError(t, o.Reject(o.BloggerID, "not my audience"))
	require.Equal(t, OrderStatusCancelled, o.Status)
	require.Equal(t, "not my audience", o.RejectReason)
	require.True(t, o.Terminal())
}

func TestRejectThenAcceptFails(t *testing.T) {
	o := newPendingOrder()
	require.NoError(t, o.Reject(o.BloggerID, ""))
	err := o.Accept(o.BloggerID)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, OrderStatusCancelled, o.Status)
}

func TestSubmitOrder(t *testing.T) {
	o := newPendingOrder()
	require.NoError(t, o.Accept(o.BloggerID))

	urls := []string{"https://example.com/post/1"}
	platform := []string{"https://instagram.com/p/abc"}
	require.NoError(t, o.Submit(o.BloggerID, urls, platform))
	require.Equal(t, OrderStatusReview, o.Status)
	require.Equal(t, urls, o.ContentURLs)
	require.Equal(t, platform, o.PlatformURLs)
}

func TestSubmitPendingOrderFails(t *testing.T) {
	o := newPendingOrder()
	err := o.Submit(o.BloggerID, []string{"https://example.com/1"}, nil)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, OrderStatusPending, o.Status)
	require.Empty(t, o.ContentURLs)
}

func TestApproveOrder(t *testing.T) {
	o := newPendingOrder()
	require.NoError(t, o.Accept(o.BloggerID))
	require.NoError(t, o.Submit(o.BloggerID, []string{"https://example.com/1"}, nil))

	now := time.Now().UTC()
	require.NoError(t, o.Approve(o.AdvertiserID, now))
	require.Equal(t, OrderStatusCompleted, o.Status)
	require.NotNil(t, o.CompletedAt)
	require.Equal(t, now, *o.CompletedAt)
	require.True(t, o.Terminal())
}

func TestApproveTwiceFailsAndKeepsTimestamp(t *testing.T) {
	o := newPendingOrder()
	require.NoError(t, o.Accept(o.BloggerID))
	require.NoError(t, o.Submit(o.BloggerID, []string{"https://example.com/1"}, nil))

	first := time.Now().UTC()
	require.NoError(t, o.Approve(o.AdvertiserID, first))

	err := o.Approve(o.AdvertiserID, first.Add(time.Hour))
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, first, *o.CompletedAt)
}

func TestApproveWrongActor(t *testing.T) {
	o := newPendingOrder()
	o.Status = OrderStatusReview
	err := o.Approve(o.BloggerID, time.Now())
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, OrderStatusReview, o.Status)
	require.Nil(t, o.CompletedAt)
}

func TestParticipant(t *testing.T) {
	o := newPendingOrder()
	require.True(t, o.Participant(o.BloggerID))
	require.True(t, o.Participant(o.AdvertiserID))
	require.False(t, o.Participant(uuid.New()))
}
