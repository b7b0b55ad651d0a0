package catalog

import (
	"context"

	"github.com/jpashop/backend/internal/domain/catalog"
	"github.com/jpashop/backend/internal/domain/shared"
)

// ItemService handles item registration, update and lookup
type ItemService struct {
	itemRepo catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// SaveItem registers a new item under the caller-supplied ID. A taken ID is
// reported by the repository as ALREADY_EXISTS.
func (s *ItemService) SaveItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := catalog.NewItem(req.ID, catalog.ItemType(req.Type), req.Name, req.Price, req.StockQuantity, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// UpdateItem loads the item, changes it and saves it back
func (s *ItemService) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Change(req.Name, req.Price, req.StockQuantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// FindItems returns one page of items and the total count
func (s *ItemService) FindItems(ctx context.Context, f ItemListFilter) ([]ItemResponse, int64, error) {
	filter := shared.Filter{
		Search:   f.Search,
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
	}

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return responses, total, nil
}

// FindOne returns an item by ID
func (s *ItemService) FindOne(ctx context.Context, id string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}
