package order

import (
	"context"
	"errors"
	"testing"
	"time"

	appevent "github.com/jpashop/backend/internal/application/event"
	"github.com/jpashop/backend/internal/domain/catalog"
	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/domain/order"
	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/jpashop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Save(ctx context.Context, mem *member.Member) error {
	return m.Called(ctx, mem).Error(0)
}

func (m *MockMemberRepository) FindOne(ctx context.Context, id int64) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindAll(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByName(ctx context.Context, name string) ([]member.Member, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) FindOne(ctx context.Context, id string) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) FindOne(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllByCriteria(ctx context.Context, search order.OrderSearch) ([]order.Order, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllWithMemberDelivery(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOrderDTOs(ctx context.Context) ([]order.SimpleQueryDTO, error) {
	args := m.Called(ctx)
	return args.Get(0).([]order.SimpleQueryDTO), args.Error(1)
}

// fakeScope runs fn directly against the mocks and counts executions.
type fakeScope struct {
	members *MockMemberRepository
	items   *MockItemRepository
	orders  *MockOrderRepository
	calls   int
}

func (s *fakeScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.calls++
	return fn(s)
}

func (s *fakeScope) Members() member.MemberRepository { return s.members }
func (s *fakeScope) Items() catalog.ItemRepository    { return s.items }
func (s *fakeScope) Orders() order.OrderRepository    { return s.orders }

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func setup() (*OrderService, *fakeScope, *recordingPublisher) {
	scope := &fakeScope{
		members: new(MockMemberRepository),
		items:   new(MockItemRepository),
		orders:  new(MockOrderRepository),
	}
	pub := &recordingPublisher{}
	svc := NewOrderService(scope, scope.orders, appevent.NewDispatcher(pub, nil))
	return svc, scope, pub
}

func sampleMember() *member.Member {
	addr, _ := valueobject.NewAddress("Seoul", "Gangnam-daero 1", "06000")
	return &member.Member{ID: 1, Name: "userA", Address: addr}
}

func sampleItem(stock int) *catalog.Item {
	item, _ := catalog.NewItem("BOOK-1", catalog.ItemTypeBook, "JPA1 BOOK", decimal.NewFromInt(10000), stock, catalog.Details{})
	item.CreatedAt = time.Now()
	return item
}

func TestOrderService_Order(t *testing.T) {
	ctx := context.Background()

	t.Run("places an order and takes stock", func(t *testing.T) {
		svc, scope, pub := setup()
		item := sampleItem(10)

		scope.members.On("FindOne", ctx, int64(1)).Return(sampleMember(), nil)
		scope.items.On("FindOne", ctx, "BOOK-1").Return(item, nil)
		scope.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				o := args.Get(1).(*order.Order)
				o.ID = 42
			}).Return(nil)
		scope.items.On("Save", ctx, item).Return(nil)

		id, err := svc.Order(ctx, 1, "BOOK-1", 3)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.Equal(t, 7, item.StockQuantity)
		assert.Equal(t, 1, scope.calls)

		require.Len(t, pub.events, 1)
		placed, ok := pub.events[0].(*order.OrderPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, "42", placed.AggregateID())
		assert.True(t, decimal.NewFromInt(30000).Equal(placed.TotalPrice))
	})

	t.Run("fails when stock is short", func(t *testing.T) {
		svc, scope, pub := setup()
		item := sampleItem(2)

		scope.members.On("FindOne", ctx, int64(1)).Return(sampleMember(), nil)
		scope.items.On("FindOne", ctx, "BOOK-1").Return(item, nil)

		_, err := svc.Order(ctx, 1, "BOOK-1", 3)
		assert.True(t, errors.Is(err, shared.ErrNotEnoughStock))
		assert.Equal(t, 2, item.StockQuantity)
		assert.Empty(t, pub.events)
		scope.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("concurrent stock change aborts before the order is written", func(t *testing.T) {
		svc, scope, pub := setup()
		item := sampleItem(1)

		scope.members.On("FindOne", ctx, int64(1)).Return(sampleMember(), nil)
		scope.items.On("FindOne", ctx, "BOOK-1").Return(item, nil)
		scope.items.On("Save", ctx, item).Return(shared.ErrOptimisticLock)

		_, err := svc.Order(ctx, 1, "BOOK-1", 1)
		assert.True(t, errors.Is(err, shared.ErrOptimisticLock))
		assert.Empty(t, pub.events)
		scope.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown member", func(t *testing.T) {
		svc, scope, _ := setup()
		scope.members.On("FindOne", ctx, int64(9)).Return(nil, shared.ErrNotFound)

		_, err := svc.Order(ctx, 9, "BOOK-1", 1)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func placedOrder(t *testing.T, item *catalog.Item, count int) *order.Order {
	t.Helper()
	m := sampleMember()
	line, err := order.CreateOrderItem(item, item.Price, count)
	require.NoError(t, err)
	o, err := order.CreateOrder(m, order.NewDelivery(m.Address), line)
	require.NoError(t, err)
	o.ID = 5
	return o
}

func TestOrderService_CancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and restores stock", func(t *testing.T) {
		svc, scope, pub := setup()
		item := sampleItem(10)
		o := placedOrder(t, item, 4)
		require.Equal(t, 6, item.StockQuantity)

		scope.orders.On("FindOne", ctx, int64(5)).Return(o, nil)
		scope.orders.On("Save", ctx, o).Return(nil)
		scope.items.On("Save", ctx, item).Return(nil)

		cancelled, err := svc.CancelOrder(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusCancel, cancelled.Status)
		assert.Equal(t, 10, item.StockQuantity)
		require.Len(t, pub.events, 1)
		assert.IsType(t, &order.OrderCancelledEvent{}, pub.events[0])
	})

	t.Run("completed delivery cannot be cancelled", func(t *testing.T) {
		svc, scope, pub := setup()
		item := sampleItem(10)
		o := placedOrder(t, item, 4)
		o.Delivery.Complete()

		scope.orders.On("FindOne", ctx, int64(5)).Return(o, nil)

		_, err := svc.CancelOrder(ctx, 5)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		assert.Equal(t, 6, item.StockQuantity)
		assert.Empty(t, pub.events)
	})
}

func TestOrderService_Queries(t *testing.T) {
	ctx := context.Background()
	svc, scope, _ := setup()

	status := order.OrderStatusOrder
	search := order.OrderSearch{MemberName: "user", OrderStatus: &status}
	scope.orders.On("FindAllByCriteria", ctx, search).Return([]order.Order{{ID: 1}}, nil)
	scope.orders.On("FindOrderDTOs", ctx).Return([]order.SimpleQueryDTO{{OrderID: 2}}, nil)

	orders, err := svc.FindOrders(ctx, search)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	rows, err := svc.FindOrderDTOs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), FromQueryDTOs(rows)[0].OrderID)
}

func TestSearchRequest_ToSearch(t *testing.T) {
	s := SearchRequest{MemberName: "kim"}.ToSearch()
	assert.False(t, s.HasStatus())

	s = SearchRequest{OrderStatus: "CANCEL"}.ToSearch()
	require.True(t, s.HasStatus())
	assert.Equal(t, order.OrderStatusCancel, *s.OrderStatus)
}
