package kitchen

import (
	"restaurant/api/response"
	kitchenapp "restaurant/application/kitchen"
	"restaurant/domain/kitchen"

	"github.com/gin-gonic/gin"
)

// Controller serves the kitchen board. Kitchen orders are only created by
// the order confirmation listener, never over HTTP.
type Controller struct {
	getOrders *kitchenapp.GetOrders
	cookOrder *kitchenapp.CookOrder
}

func NewController(getOrders *kitchenapp.GetOrders, cookOrder *kitchenapp.CookOrder) *Controller {
	return &Controller{getOrders: getOrders, cookOrder: cookOrder}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	kitchenGroup := router.Group("/kitchen/orders")
	{
		kitchenGroup.GET("", c.GetOrders)
		kitchenGroup.POST("/:id/cook", c.CookOrder)
	}
}

// GetOrders GET /api/v1/kitchen/orders
func (c *Controller) GetOrders(ctx *gin.Context) {
	orders, err := c.getOrders.Execute(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "kitchen orders retrieved successfully")
}

// CookOrder POST /api/v1/kitchen/orders/:id/cook
func (c *Controller) CookOrder(ctx *gin.Context) {
	if err := c.cookOrder.Execute(ctx.Request.Context(), kitchen.OrderID(ctx.Param("id"))); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "order cooked")
}
