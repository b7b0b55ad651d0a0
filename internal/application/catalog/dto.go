package catalog

import (
	"time"

	"github.com/jpashop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateItemRequest is the body of the item registration endpoint
type CreateItemRequest struct {
	ID            string          `json:"id" binding:"required,max=64"`
	Type          string          `json:"type" binding:"required,oneof=BOOK ALBUM MOVIE"`
	Name          string          `json:"name" binding:"required,max=200"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity" binding:"min=0"`
	Author        string          `json:"author" binding:"max=100"`
	ISBN          string          `json:"isbn" binding:"max=20"`
	Artist        string          `json:"artist" binding:"max=100"`
	Etc           string          `json:"etc" binding:"max=200"`
	Director      string          `json:"director" binding:"max=100"`
	Actor         string          `json:"actor" binding:"max=100"`
}

func (r CreateItemRequest) details() catalog.Details {
	return catalog.Details{
		Author:   r.Author,
		ISBN:     r.ISBN,
		Artist:   r.Artist,
		Etc:      r.Etc,
		Director: r.Director,
		Actor:    r.Actor,
	}
}

// UpdateItemRequest is the body of the item update endpoint
type UpdateItemRequest struct {
	Name          string          `json:"name" binding:"required,max=200"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity" binding:"min=0"`
}

// ItemResponse is the public view of an item
type ItemResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Author        string          `json:"author,omitempty"`
	ISBN          string          `json:"isbn,omitempty"`
	Artist        string          `json:"artist,omitempty"`
	Etc           string          `json:"etc,omitempty"`
	Director      string          `json:"director,omitempty"`
	Actor         string          `json:"actor,omitempty"`
	CreatedAt     time.Time       `json:"createdDate"`
	UpdatedAt     time.Time       `json:"lastModifiedDate"`
}

// ToItemResponse maps an item to its public view
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		Type:          string(item.Type),
		Name:          item.Name,
		Price:         item.Price,
		StockQuantity: item.StockQuantity,
		Author:        item.Author,
		ISBN:          item.ISBN,
		Artist:        item.Artist,
		Etc:           item.Etc,
		Director:      item.Director,
		Actor:         item.Actor,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// ItemListFilter holds the list query parameters
type ItemListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}
