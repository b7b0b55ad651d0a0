package order

import "context"

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save inserts a new order with its delivery and lines, or updates the order row
	Save(ctx context.Context, order *Order) error
	// FindOne loads the order with member, delivery and lines (with items)
	FindOne(ctx context.Context, id int64) (*Order, error)
	// FindAllByCriteria applies only the criteria that are set, capped at MaxSearchResults
	FindAllByCriteria(ctx context.Context, search OrderSearch) ([]Order, error)
	// FindAllWithMemberDelivery loads orders with member and delivery in one query
	FindAllWithMemberDelivery(ctx context.Context) ([]Order, error)
	// FindOrderDTOs projects orders directly into SimpleQueryDTO rows
	FindOrderDTOs(ctx context.Context) ([]SimpleQueryDTO, error)
}
