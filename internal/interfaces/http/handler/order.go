package handler

import (
	"github.com/gin-gonic/gin"
	apporder "github.com/jpashop/backend/internal/application/order"
	"github.com/jpashop/backend/internal/domain/order"
	"github.com/jpashop/backend/internal/interfaces/http/dto"
)

// OrderHandler serves order placement, cancellation and the order queries
type OrderHandler struct {
	BaseHandler
	orderService *apporder.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apporder.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CancelResponse is returned by the cancel endpoint
type CancelResponse struct {
	ID     int64             `json:"id"`
	Status order.OrderStatus `json:"status"`
}

// SimpleOrdersV1 godoc
// @Summary      List orders as entities
// @Tags         simple-orders
// @Produce      json
// @Success      200 {array} order.Order
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/simple-orders [get]
func (h *OrderHandler) SimpleOrdersV1(c *gin.Context) {
	orders, err := h.orderService.FindOrders(c.Request.Context(), order.OrderSearch{})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// SimpleOrdersV2 godoc
// @Summary      List orders as DTOs
// @Description  Maps the lazily loaded entity graph to SimpleOrderDTO.
// @Tags         simple-orders
// @Produce      json
// @Success      200 {object} dto.Result[[]apporder.SimpleOrderDTO]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v2/simple-orders [get]
func (h *OrderHandler) SimpleOrdersV2(c *gin.Context) {
	orders, err := h.orderService.FindOrders(c.Request.Context(), order.OrderSearch{})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewResult(apporder.ToSimpleOrderDTOs(orders)))
}

// SimpleOrdersV3 godoc
// @Summary      List orders with one fetch-join query
// @Tags         simple-orders
// @Produce      json
// @Success      200 {object} dto.Result[[]apporder.SimpleOrderDTO]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v3/simple-orders [get]
func (h *OrderHandler) SimpleOrdersV3(c *gin.Context) {
	orders, err := h.orderService.FindAllWithMemberDelivery(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewResult(apporder.ToSimpleOrderDTOs(orders)))
}

// SimpleOrdersV4 godoc
// @Summary      List orders from a projection query
// @Tags         simple-orders
// @Produce      json
// @Success      200 {object} dto.Result[[]apporder.SimpleOrderDTO]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v4/simple-orders [get]
func (h *OrderHandler) SimpleOrdersV4(c *gin.Context) {
	rows, err := h.orderService.FindOrderDTOs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewResult(apporder.FromQueryDTOs(rows)))
}

// Search godoc
// @Summary      Search orders
// @Tags         orders
// @Produce      json
// @Param        memberName query string false "Member name contains"
// @Param        orderStatus query string false "Order status" Enums(ORDER, CANCEL)
// @Success      200 {object} dto.Result[[]apporder.OrderDTO]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/orders [get]
func (h *OrderHandler) Search(c *gin.Context) {
	var req apporder.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	orders, err := h.orderService.FindOrders(c.Request.Context(), req.ToSearch())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewResult(apporder.ToOrderDTOs(orders)))
}

// Place godoc
// @Summary      Place an order
// @Description  Takes stock from one item for one member. Short stock answers 422 and a concurrent stock change answers 409.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body apporder.OrderRequest true "Order to place"
// @Success      200 {object} dto.IDResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req apporder.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	id, err := h.orderService.Order(c.Request.Context(), req.MemberID, req.ItemID, req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.IDResponse{ID: id})
}

// Cancel godoc
// @Summary      Cancel an order
// @Description  Restores the stock of every line. Orders whose delivery is complete answer 422.
// @Tags         orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} CancelResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CancelResponse{ID: o.ID, Status: o.Status})
}
