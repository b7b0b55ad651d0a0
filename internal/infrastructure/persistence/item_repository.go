package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpashop/backend/internal/domain/catalog"
	"github.com/jpashop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ItemSortFields contains allowed sort fields for items
var ItemSortFields = map[string]bool{
	"id":             true,
	"name":           true,
	"price":          true,
	"stock_quantity": true,
	"created_at":     true,
}

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Save decides between INSERT and UPDATE with item.IsNew(). The ID is assigned
// by the caller, so neither an existence SELECT nor an upsert is issued. Updates are
// conditional on the version that was loaded; a stale copy fails with
// OPTIMISTIC_LOCK_ERROR instead of overwriting a newer stock quantity.
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	db := r.db.WithContext(ctx)
	if item.IsNew() {
		if item.Version == 0 {
			item.Version = 1
		}
		if err := db.Create(item).Error; err != nil {
			return translateWriteError(err, fmt.Sprintf("item %s already exists", item.ID))
		}
		return nil
	}

	loaded := item.Version
	item.Version = loaded + 1
	result := db.Model(item).
		Where("version = ?", loaded).
		Select("*").
		Omit("created_at", "created_by").
		Updates(item)
	if result.Error != nil {
		item.Version = loaded
		return result.Error
	}
	if result.RowsAffected == 0 {
		item.Version = loaded
		exists, err := r.ExistsByID(ctx, item.ID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR",
			fmt.Sprintf("item %s has been modified by another transaction", item.ID))
	}
	return nil
}

// FindOne finds an item by its ID
func (r *GormItemRepository) FindOne(ctx context.Context, id string) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	var items []catalog.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Item{}), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&catalog.Item{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks whether an item with the ID exists
func (r *GormItemRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Item{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormItemRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	filter = filter.Normalize()
	query = r.applySearch(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "id")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if filter.OrderDir == "" {
		orderDir = "ASC"
	}

	return query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
