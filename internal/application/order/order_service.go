package order

import (
	"context"

	appevent "github.com/jpashop/backend/internal/application/event"
	"github.com/jpashop/backend/internal/domain/order"
	"github.com/jpashop/backend/internal/domain/shared"
)

// OrderService places, cancels and searches orders. Writes go through the
// TransactionScope so stock and order rows commit or roll back together.
type OrderService struct {
	scope     TransactionScope
	orderRepo order.OrderRepository
	events    *appevent.Dispatcher
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope, orderRepo order.OrderRepository, events *appevent.Dispatcher) *OrderService {
	if events == nil {
		events = appevent.NewDispatcher(nil, nil)
	}
	return &OrderService{scope: scope, orderRepo: orderRepo, events: events}
}

// Order places an order for count units of one item and returns its ID.
func (s *OrderService) Order(ctx context.Context, memberID int64, itemID string, count int) (int64, error) {
	var placed *order.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		m, err := repos.Members().FindOne(ctx, memberID)
		if err != nil {
			return err
		}
		item, err := repos.Items().FindOne(ctx, itemID)
		if err != nil {
			return err
		}

		delivery := order.NewDelivery(m.Address)
		line, err := order.CreateOrderItem(item, item.Price, count)
		if err != nil {
			return err
		}
		o, err := order.CreateOrder(m, delivery, line)
		if err != nil {
			return err
		}

		// A concurrent order on the same item fails here with
		// OPTIMISTIC_LOCK_ERROR and the whole transaction rolls back.
		if err := repos.Items().Save(ctx, item); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return 0, err
	}

	placed.MarkPlaced()
	s.events.Dispatch(ctx, placed)
	return placed.ID, nil
}

// CancelOrder cancels the order and restores the stock of every line.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	var cancelled *order.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindOne(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}
		for i := range o.OrderItems {
			item := o.OrderItems[i].Item
			if item == nil {
				return shared.NewDomainError("INVALID_STATE", "order line has no item loaded")
			}
			if err := repos.Items().Save(ctx, item); err != nil {
				return err
			}
		}
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Dispatch(ctx, cancelled)
	return cancelled, nil
}

// FindOrders runs the criteria search.
func (s *OrderService) FindOrders(ctx context.Context, search order.OrderSearch) ([]order.Order, error) {
	return s.orderRepo.FindAllByCriteria(ctx, search)
}

// FindAllWithMemberDelivery loads orders with member and delivery in one query.
func (s *OrderService) FindAllWithMemberDelivery(ctx context.Context) ([]order.Order, error) {
	return s.orderRepo.FindAllWithMemberDelivery(ctx)
}

// FindOrderDTOs returns the direct projection rows.
func (s *OrderService) FindOrderDTOs(ctx context.Context) ([]order.SimpleQueryDTO, error) {
	return s.orderRepo.FindOrderDTOs(ctx)
}
