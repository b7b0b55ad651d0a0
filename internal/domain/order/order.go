package order

import (
	"time"

	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/jpashop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusOrder  OrderStatus = "ORDER"
	OrderStatusCancel OrderStatus = "CANCEL"
)

// IsValid reports whether the status is a known one.
func (s OrderStatus) IsValid() bool {
	return s == OrderStatusOrder || s == OrderStatusCancel
}

// DeliveryStatus is the shipping state of a delivery
type DeliveryStatus string

const (
	DeliveryStatusReady DeliveryStatus = "READY"
	DeliveryStatusComp  DeliveryStatus = "COMP"
)

// Delivery is shipped to the address it was created with.
type Delivery struct {
	ID      int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Address valueobject.Address `gorm:"embedded" json:"address"`
	Status  DeliveryStatus      `gorm:"type:varchar(10);not null" json:"status"`
	shared.BaseEntity
}

// TableName returns the table name for GORM
func (Delivery) TableName() string {
	return "deliveries"
}

// NewDelivery creates a delivery that is ready to ship.
func NewDelivery(address valueobject.Address) *Delivery {
	return &Delivery{Address: address, Status: DeliveryStatusReady}
}

// Complete marks the delivery as shipped. Completed deliveries block cancellation.
func (d *Delivery) Complete() {
	d.Status = DeliveryStatusComp
}

// Order is the aggregate root for a purchase: one member, one delivery and at
// least one order line.
type Order struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID   int64          `gorm:"not null;index" json:"memberId"`
	Member     *member.Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	DeliveryID int64          `gorm:"not null;uniqueIndex" json:"deliveryId"`
	Delivery   *Delivery      `gorm:"foreignKey:DeliveryID" json:"delivery,omitempty"`
	OrderItems []OrderItem    `gorm:"foreignKey:OrderID" json:"orderItems,omitempty"`
	OrderDate  time.Time      `gorm:"not null" json:"orderDate"`
	Status     OrderStatus    `gorm:"type:varchar(10);not null;index" json:"status"`
	shared.BaseEntity
	shared.EventRecorder `gorm:"-" json:"-"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// CreateOrder builds a new order for the member. The order items must have been
// created through CreateOrderItem so that stock has already been taken.
func CreateOrder(m *member.Member, delivery *Delivery, items ...*OrderItem) (*Order, error) {
	if m == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "order requires a member")
	}
	if delivery == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "order requires a delivery")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "order requires at least one item")
	}

	o := &Order{
		MemberID:  m.ID,
		Member:    m,
		Delivery:  delivery,
		OrderDate: time.Now(),
		Status:    OrderStatusOrder,
	}
	for _, item := range items {
		o.OrderItems = append(o.OrderItems, *item)
	}
	return o, nil
}

// MarkPlaced records OrderPlaced once the generated ID is known.
func (o *Order) MarkPlaced() {
	o.AddDomainEvent(NewOrderPlacedEvent(o))
}

// Cancel cancels the order and puts the stock of every line back. Orders whose
// delivery has completed cannot be cancelled. Each line's Item must be loaded.
func (o *Order) Cancel() error {
	if o.Delivery != nil && o.Delivery.Status == DeliveryStatusComp {
		return shared.NewDomainError("INVALID_STATE", "order cannot be cancelled after delivery has completed")
	}
	if o.Status == OrderStatusCancel {
		return shared.NewDomainError("INVALID_STATE", "order is already cancelled")
	}

	o.Status = OrderStatusCancel
	for i := range o.OrderItems {
		o.OrderItems[i].Cancel()
	}
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// TotalPrice returns the sum of all line totals.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range o.OrderItems {
		total = total.Add(o.OrderItems[i].TotalPrice())
	}
	return total
}
