package order

import (
	"strconv"

	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeOrder is the aggregate type carried by order events.
const AggregateTypeOrder = "Order"

const (
	EventTypeOrderPlaced    = "OrderPlaced"
	EventTypeOrderCancelled = "OrderCancelled"
)

// OrderLine is the event payload of one order item
type OrderLine struct {
	ItemID     string          `json:"item_id"`
	OrderPrice decimal.Decimal `json:"order_price"`
	Count      int             `json:"count"`
}

func linesOf(o *Order) []OrderLine {
	lines := make([]OrderLine, 0, len(o.OrderItems))
	for _, oi := range o.OrderItems {
		lines = append(lines, OrderLine{ItemID: oi.ItemID, OrderPrice: oi.OrderPrice, Count: oi.Count})
	}
	return lines
}

// OrderPlacedEvent is published after an order has been saved
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID    int64           `json:"order_id"`
	MemberID   int64           `json:"member_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Lines      []OrderLine     `json:"lines"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, strconv.FormatInt(o.ID, 10)),
		OrderID:         o.ID,
		MemberID:        o.MemberID,
		TotalPrice:      o.TotalPrice(),
		Lines:           linesOf(o),
	}
}

// OrderCancelledEvent is published when an order is cancelled and its stock restored
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID  int64       `json:"order_id"`
	MemberID int64       `json:"member_id"`
	Lines    []OrderLine `json:"lines"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, strconv.FormatInt(o.ID, 10)),
		OrderID:         o.ID,
		MemberID:        o.MemberID,
		Lines:           linesOf(o),
	}
}
