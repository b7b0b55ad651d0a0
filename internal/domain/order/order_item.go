package order

import (
	"github.com/jpashop/backend/internal/domain/catalog"
	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order. OrderPrice is the unit price at the time
// of ordering.
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"not null;index" json:"orderId"`
	ItemID     string          `gorm:"type:varchar(64);not null;index" json:"itemId"`
	Item       *catalog.Item   `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	OrderPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"orderPrice"`
	Count      int             `gorm:"not null" json:"count"`
	shared.BaseEntity
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// CreateOrderItem takes count units of the item out of stock.
func CreateOrderItem(item *catalog.Item, orderPrice decimal.Decimal, count int) (*OrderItem, error) {
	if item == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "order item requires an item")
	}
	if count <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "order count must be positive")
	}
	if err := item.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{
		ItemID:     item.ID,
		Item:       item,
		OrderPrice: orderPrice,
		Count:      count,
	}, nil
}

// Cancel returns the ordered quantity to stock.
func (oi *OrderItem) Cancel() {
	if oi.Item != nil {
		oi.Item.AddStock(oi.Count)
	}
}

// TotalPrice returns OrderPrice × Count.
func (oi *OrderItem) TotalPrice() decimal.Decimal {
	return oi.OrderPrice.Mul(decimal.NewFromInt(int64(oi.Count)))
}
