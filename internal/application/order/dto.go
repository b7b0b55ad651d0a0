package order

import (
	"time"

	"github.com/jpashop/backend/internal/domain/order"
	"github.com/jpashop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderRequest is the body of the order placement endpoint
type OrderRequest struct {
	MemberID int64  `json:"memberId" binding:"required,min=1"`
	ItemID   string `json:"itemId" binding:"required,max=64"`
	Count    int    `json:"count" binding:"required,min=1"`
}

// SearchRequest holds the query parameters of the criteria search
type SearchRequest struct {
	MemberName  string `form:"memberName" binding:"max=100"`
	OrderStatus string `form:"orderStatus" binding:"omitempty,oneof=ORDER CANCEL"`
}

// ToSearch converts the request into the repository criteria
func (r SearchRequest) ToSearch() order.OrderSearch {
	search := order.OrderSearch{MemberName: r.MemberName}
	if r.OrderStatus != "" {
		status := order.OrderStatus(r.OrderStatus)
		search.OrderStatus = &status
	}
	return search
}

// SimpleOrderDTO is the flat order view built from an order with member and delivery
type SimpleOrderDTO struct {
	OrderID     int64               `json:"orderId"`
	Name        string              `json:"name"`
	OrderDate   time.Time           `json:"orderDate"`
	OrderStatus order.OrderStatus   `json:"orderStatus"`
	Address     valueobject.Address `json:"address"`
}

// NewSimpleOrderDTO maps an order whose member and delivery are loaded
func NewSimpleOrderDTO(o *order.Order) SimpleOrderDTO {
	dto := SimpleOrderDTO{
		OrderID:     o.ID,
		OrderDate:   o.OrderDate,
		OrderStatus: o.Status,
	}
	if o.Member != nil {
		dto.Name = o.Member.Name
	}
	if o.Delivery != nil {
		dto.Address = o.Delivery.Address
	}
	return dto
}

// ToSimpleOrderDTOs maps a slice of orders
func ToSimpleOrderDTOs(orders []order.Order) []SimpleOrderDTO {
	dtos := make([]SimpleOrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, NewSimpleOrderDTO(&orders[i]))
	}
	return dtos
}

// FromQueryDTOs converts projected rows into the same response shape
func FromQueryDTOs(rows []order.SimpleQueryDTO) []SimpleOrderDTO {
	dtos := make([]SimpleOrderDTO, 0, len(rows))
	for _, r := range rows {
		dtos = append(dtos, SimpleOrderDTO(r))
	}
	return dtos
}

// OrderItemDTO is one line of an OrderDTO
type OrderItemDTO struct {
	ItemName   string          `json:"itemName"`
	OrderPrice decimal.Decimal `json:"orderPrice"`
	Count      int             `json:"count"`
}

// OrderDTO is the full order view including its lines
type OrderDTO struct {
	SimpleOrderDTO
	TotalPrice decimal.Decimal `json:"totalPrice"`
	OrderItems []OrderItemDTO  `json:"orderItems"`
}

// ToOrderDTOs maps orders whose lines and items are loaded
func ToOrderDTOs(orders []order.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		lines := make([]OrderItemDTO, 0, len(o.OrderItems))
		for _, oi := range o.OrderItems {
			line := OrderItemDTO{OrderPrice: oi.OrderPrice, Count: oi.Count}
			if oi.Item != nil {
				line.ItemName = oi.Item.Name
			}
			lines = append(lines, line)
		}
		dtos = append(dtos, OrderDTO{
			SimpleOrderDTO: NewSimpleOrderDTO(o),
			TotalPrice:     o.TotalPrice(),
			OrderItems:     lines,
		})
	}
	return dtos
}
