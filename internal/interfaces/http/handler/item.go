package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/jpashop/backend/internal/application/catalog"
	"github.com/jpashop/backend/internal/interfaces/http/dto"
)

const defaultItemPageSize = 20

// ItemHandler serves the catalog endpoints
type ItemHandler struct {
	BaseHandler
	itemService *appcatalog.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *appcatalog.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create godoc
// @Summary      Register an item
// @Description  Creates a book, album or movie under the caller-assigned ID. Attributes that do not belong to the type are dropped.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateItemRequest true "Item to register"
// @Success      200 {object} appcatalog.ItemResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req appcatalog.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.itemService.SaveItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// List godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        search query string false "Name contains"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field" Enums(id, name, price, stock_quantity, created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Page[appcatalog.ItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	var filter appcatalog.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = defaultItemPageSize
	}

	items, total, err := h.itemService.FindItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Page[appcatalog.ItemResponse]{
		Data:     items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}

// Get godoc
// @Summary      Get item by ID
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} appcatalog.ItemResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.itemService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update godoc
// @Summary      Update an item
// @Description  Replaces name, price and stock. A concurrent stock change answers 409.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body appcatalog.UpdateItemRequest true "New values"
// @Success      200 {object} appcatalog.ItemResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/items/{id} [post]
func (h *ItemHandler) Update(c *gin.Context) {
	var req appcatalog.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
