package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jpashop/backend/internal/interfaces/http/handler"
)

// Handlers bundles the API handlers wired by the server
type Handlers struct {
	Member *handler.MemberHandler
	Order  *handler.OrderHandler
	Item   *handler.ItemHandler
	Health *handler.HealthHandler
}

// RegisterAPI lays out every versioned endpoint of the shop API plus /health.
func RegisterAPI(engine *gin.Engine, h Handlers) *Router {
	engine.GET("/health", h.Health.Health)

	r := NewRouter(engine)

	v1Members := NewDomainGroup("/members").
		POST("", h.Member.JoinV1).
		GET("", h.Member.ListV1)
	v1Orders := NewDomainGroup("/orders").
		GET("", h.Order.Search).
		POST("", h.Order.Place).
		POST("/:id/cancel", h.Order.Cancel)
	v1Items := NewDomainGroup("/items").
		POST("", h.Item.Create).
		GET("", h.Item.List).
		GET("/:id", h.Item.Get).
		POST("/:id", h.Item.Update)
	v1System := NewDomainGroup("").GET("/ping", h.Health.Ping)
	r.Register("v1", v1Members, v1Orders, v1Items, simpleOrders(h.Order.SimpleOrdersV1), v1System)

	v2Members := NewDomainGroup("/members").
		POST("", h.Member.JoinV2).
		GET("", h.Member.ListV2).
		GET("/:id", h.Member.Get).
		POST("/:id", h.Member.UpdateV2)
	r.Register("v2", v2Members, simpleOrders(h.Order.SimpleOrdersV2))

	r.Register("v3", simpleOrders(h.Order.SimpleOrdersV3))
	r.Register("v4", simpleOrders(h.Order.SimpleOrdersV4))

	r.Setup()
	return r
}

func simpleOrders(list gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("/simple-orders").GET("", list)
}
