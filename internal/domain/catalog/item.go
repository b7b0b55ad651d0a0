package catalog

import (
	"fmt"
	"strings"

	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemType is the single-table discriminator stored in the dtype column.
type ItemType string

const (
	ItemTypeBook  ItemType = "BOOK"
	ItemTypeAlbum ItemType = "ALBUM"
	ItemTypeMovie ItemType = "MOVIE"
)

// IsValid reports whether the type is one of the known item kinds.
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeBook, ItemTypeAlbum, ItemTypeMovie:
		return true
	}
	return false
}

// Details holds the kind-specific attributes. Only the ones that belong to the
// item's type are kept.
type Details struct {
	Author   string `gorm:"type:varchar(100)" json:"author,omitempty"`
	ISBN     string `gorm:"column:isbn;type:varchar(20)" json:"isbn,omitempty"`
	Artist   string `gorm:"type:varchar(100)" json:"artist,omitempty"`
	Etc      string `gorm:"type:varchar(200)" json:"etc,omitempty"`
	Director string `gorm:"type:varchar(100)" json:"director,omitempty"`
	Actor    string `gorm:"type:varchar(100)" json:"actor,omitempty"`
}

func (d Details) forType(t ItemType) Details {
	switch t {
	case ItemTypeBook:
		return Details{Author: d.Author, ISBN: d.ISBN}
	case ItemTypeAlbum:
		return Details{Artist: d.Artist, Etc: d.Etc}
	case ItemTypeMovie:
		return Details{Director: d.Director, Actor: d.Actor}
	}
	return Details{}
}

// Item is a sellable product. Its ID is assigned by the caller, so IsNew relies
// on the creation timestamp instead of the identifier.
type Item struct {
	ID            string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Type          ItemType        `gorm:"column:dtype;type:varchar(20);not null;index" json:"type"`
	Name          string          `gorm:"type:varchar(200);not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stockQuantity"`
	Details       `gorm:"embedded"`
	// Version guards stock against lost updates between concurrent orders.
	Version int64 `gorm:"not null;default:1" json:"version"`
	shared.BaseEntity
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates an unsaved item with a caller-assigned ID.
func NewItem(id string, itemType ItemType, name string, price decimal.Decimal, stock int, details Details) (*Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "item id cannot be empty")
	}
	if len(id) > 64 {
		return nil, shared.NewDomainError("INVALID_INPUT", "item id cannot exceed 64 characters")
	}
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unknown item type %q", itemType))
	}
	item := &Item{ID: id, Type: itemType, Version: 1}
	if err := item.Change(name, price, stock); err != nil {
		return nil, err
	}
	item.Details = details.forType(itemType)
	return item, nil
}

// IsNew reports whether the item has never been persisted.
func (i *Item) IsNew() bool {
	return i.CreatedAt.IsZero()
}

// Change replaces name, price and stock in one step.
func (i *Item) Change(name string, price decimal.Decimal, stock int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "item name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "item price cannot be negative")
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_INPUT", "stock quantity cannot be negative")
	}
	i.Name = name
	i.Price = price
	i.StockQuantity = stock
	return nil
}

// AddStock increases the stock quantity.
func (i *Item) AddStock(quantity int) {
	i.StockQuantity += quantity
}

// RemoveStock decreases the stock quantity, failing with NOT_ENOUGH_STOCK when
// the result would be negative.
func (i *Item) RemoveStock(quantity int) error {
	rest := i.StockQuantity - quantity
	if rest < 0 {
		return shared.NewDomainError("NOT_ENOUGH_STOCK", "need more stock")
	}
	i.StockQuantity = rest
	return nil
}

var _ shared.Persistable = (*Item)(nil)
