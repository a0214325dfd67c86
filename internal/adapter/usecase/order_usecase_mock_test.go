package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

// mockOrderRepository is a testify mock of port.OrderRepository used to
// test orchestration separately from storage semantics.
type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) UpdateOrder(ctx context.Context, id uuid.UUID, fn func(o *domain.Order, ledger port.BudgetLedger) error) (*domain.Order, error) {
	args := m.Called(ctx, id, fn)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepository) ListOrders(ctx context.Context, filter port.OrderFilter) ([]domain.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func TestCreateOrderPassesPendingOrderToRepository(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := NewOrderUseCase(repo)

	in := port.CreateOrderInput{
		CampaignID:   uuid.New(),
		BloggerID:    uuid.New(),
		AdvertiserID: uuid.New(),
		ContentType:  domain.ContentTypeVideo,
		Price:        40_000,
		Deadline:     time.Now().Add(48 * time.Hour),
	}
	repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderStatusPending &&
			o.CampaignID == in.CampaignID &&
			o.Price == in.Price &&
			o.ID != uuid.Nil
	})).Return(nil)

	order, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPending, order.Status)
	repo.AssertExpectations(t)
}

func TestCreateOrderValidationSkipsRepository(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := NewOrderUseCase(repo)

	in := port.CreateOrderInput{
		CampaignID:   uuid.New(),
		BloggerID:    uuid.New(),
		AdvertiserID: uuid.New(),
		ContentType:  "podcast",
		Price:        40_000,
		Deadline:     time.Now().Add(48 * time.Hour),
	}
	_, err := svc.CreateOrder(context.Background(), in)
	require.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCreateOrderPropagatesRepositoryError(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := NewOrderUseCase(repo)

	repo.On("CreateOrder", mock.Anything, mock.Anything).Return(domain.ErrInsufficientBudget)

	in := port.CreateOrderInput{
		CampaignID:   uuid.New(),
		BloggerID:    uuid.New(),
		AdvertiserID: uuid.New(),
		ContentType:  domain.ContentTypePost,
		Price:        40_000,
		Deadline:     time.Now().Add(48 * time.Hour),
	}
	_, err := svc.CreateOrder(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInsufficientBudget)
}

func TestRejectOrderReasonTooLongSkipsRepository(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := NewOrderUseCase(repo)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	_, err := svc.RejectOrder(context.Background(), uuid.New(), uuid.New(), string(long))
	require.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrderPropagatesNotFound(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := NewOrderUseCase(repo)

	orderID := uuid.New()
	repo.On("GetOrder", mock.Anything, orderID).Return(nil, domain.ErrOrderNotFound)

	_, err := svc.GetOrder(context.Background(), orderID, domain.UserContext{ID: uuid.New(), Role: domain.RoleBlogger})
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListOrdersScopesFilterToCaller(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := NewOrderUseCase(repo)

	bloggerID := uuid.New()
	repo.On("ListOrders", mock.Anything, mock.MatchedBy(func(f port.OrderFilter) bool {
		return f.BloggerID != nil && *f.BloggerID == bloggerID &&
			f.AdvertiserID == nil && f.Page == 1 && f.Limit == defaultPageLimit
	})).Return([]domain.Order{}, int64(0), nil)

	_, err := svc.ListBloggerOrders(context.Background(), port.ListOrdersInput{UserID: bloggerID})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListOrdersRepositoryError(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := NewOrderUseCase(repo)

	repo.On("ListOrders", mock.Anything, mock.Anything).Return([]domain.Order(nil), int64(0), errors.New("connection reset"))

	_, err := svc.ListAdvertiserOrders(context.Background(), port.ListOrdersInput{UserID: uuid.New()})
	require.Error(t, err)
}
