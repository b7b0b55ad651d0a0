package catalog

import (
	"context"

	"github.com/jpashop/backend/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// Save inserts when item.IsNew() and updates otherwise
	Save(ctx context.Context, item *Item) error
	// FindOne returns shared.ErrNotFound when no item has the ID
	FindOne(ctx context.Context, id string) (*Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}
