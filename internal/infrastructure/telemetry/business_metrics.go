package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/domain/order"
	"github.com/jpashop/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when ShopMetrics is built without a meter
var ErrMeterNil = errors.New("NewShopMetrics: meter cannot be nil")

// ShopMetrics turns committed domain events into business counters. It is an
// event handler, so counts only move after the transaction that produced them
// has committed.
type ShopMetrics struct {
	logger *zap.Logger

	ordersPlaced    metric.Int64Counter
	ordersCancelled metric.Int64Counter
	orderAmount     metric.Float64Counter
	itemsOrdered    metric.Int64Counter
	itemsReturned   metric.Int64Counter
	membersJoined   metric.Int64Counter
}

// NewShopMetrics registers the shop counters on meter
func NewShopMetrics(meter metric.Meter, logger *zap.Logger) (*ShopMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &ShopMetrics{logger: logger}
	var err error

	if m.ordersPlaced, err = int64Counter(meter, "jpashop_orders_placed_total", "Orders placed", "{orders}"); err != nil {
		return nil, err
	}
	if m.ordersCancelled, err = int64Counter(meter, "jpashop_orders_cancelled_total", "Orders cancelled", "{orders}"); err != nil {
		return nil, err
	}
	if m.itemsOrdered, err = int64Counter(meter, "jpashop_items_ordered_total", "Units taken from stock by orders", "{units}"); err != nil {
		return nil, err
	}
	if m.itemsReturned, err = int64Counter(meter, "jpashop_items_returned_total", "Units returned to stock by cancellations", "{units}"); err != nil {
		return nil, err
	}
	if m.membersJoined, err = int64Counter(meter, "jpashop_members_joined_total", "Members joined", "{members}"); err != nil {
		return nil, err
	}
	m.orderAmount, err = meter.Float64Counter("jpashop_order_amount_total",
		metric.WithDescription("Sum of placed order totals"),
		metric.WithUnit("{won}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter jpashop_order_amount_total: %w", err)
	}

	return m, nil
}

func int64Counter(meter metric.Meter, name, description, unit string) (metric.Int64Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return c, nil
}

// Handle implements shared.EventHandler
func (m *ShopMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		m.ordersPlaced.Add(ctx, 1)
		m.orderAmount.Add(ctx, e.TotalPrice.InexactFloat64())
		for _, line := range e.Lines {
			m.itemsOrdered.Add(ctx, int64(line.Count), metric.WithAttributes(attribute.String("item_id", line.ItemID)))
		}
	case *order.OrderCancelledEvent:
		m.ordersCancelled.Add(ctx, 1)
		for _, line := range e.Lines {
			m.itemsReturned.Add(ctx, int64(line.Count), metric.WithAttributes(attribute.String("item_id", line.ItemID)))
		}
	case *member.MemberJoinedEvent:
		m.membersJoined.Add(ctx, 1)
	default:
		m.logger.Debug("Event not counted", zap.String("event_type", event.EventType()))
	}
	return nil
}

// EventTypes implements shared.EventHandler
func (m *ShopMetrics) EventTypes() []string {
	return []string{
		order.EventTypeOrderPlaced,
		order.EventTypeOrderCancelled,
		member.EventTypeMemberJoined,
	}
}
