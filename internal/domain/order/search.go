package order

import (
	"strings"
	"time"

	"github.com/jpashop/backend/internal/domain/shared/valueobject"
)

// MaxSearchResults caps every criteria search.
const MaxSearchResults = 1000

// OrderSearch holds the optional criteria of an order search. Unset criteria
// do not restrict the result.
type OrderSearch struct {
	MemberName  string
	OrderStatus *OrderStatus
}

// HasMemberName reports whether the member name criterion has text.
func (s OrderSearch) HasMemberName() bool {
	return strings.TrimSpace(s.MemberName) != ""
}

// HasStatus reports whether a status criterion is set.
func (s OrderSearch) HasStatus() bool {
	return s.OrderStatus != nil
}

// SimpleQueryDTO is a flat row projected straight from orders, members and
// deliveries without loading entities.
type SimpleQueryDTO struct {
	OrderID     int64               `json:"orderId"`
	Name        string              `json:"name"`
	OrderDate   time.Time           `json:"orderDate"`
	OrderStatus OrderStatus         `json:"orderStatus"`
	Address     valueobject.Address `gorm:"embedded" json:"address"`
}
