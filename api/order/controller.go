/*
Package order exposes checkout and the customer order lifecycle.

Binding failures answer 400 through response.HandleError; everything a use
case returns goes through response.HandleAppError, which maps use-case kinds
to statuses and hides faults behind a generic 500.
*/
package order

import (
	"context"
	"net/http"

	"restaurant/api/response"
	orderapp "restaurant/application/order"
	"restaurant/domain/order"

	"github.com/gin-gonic/gin"
)

type stateChange interface {
	Execute(ctx context.Context, id order.ID) error
}

type Controller struct {
	checkout      *orderapp.Checkout
	getOrder      *orderapp.GetOrderByID
	getOrders     *orderapp.GetOrders
	payOrder      *orderapp.PayOrder
	confirmOrder  *orderapp.ConfirmOrder
	completeOrder *orderapp.CompleteOrder
	cancelOrder   *orderapp.CancelOrder
}

type UseCases struct {
	Checkout      *orderapp.Checkout
	GetOrder      *orderapp.GetOrderByID
	GetOrders     *orderapp.GetOrders
	PayOrder      *orderapp.PayOrder
	ConfirmOrder  *orderapp.ConfirmOrder
	CompleteOrder *orderapp.CompleteOrder
	CancelOrder   *orderapp.CancelOrder
}

func NewController(uc UseCases) *Controller {
	return &Controller{
		checkout:      uc.Checkout,
		getOrder:      uc.GetOrder,
		getOrders:     uc.GetOrders,
		payOrder:      uc.PayOrder,
		confirmOrder:  uc.ConfirmOrder,
		completeOrder: uc.CompleteOrder,
		cancelOrder:   uc.CancelOrder,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("/checkout", c.Checkout)
		orderGroup.GET("", c.GetOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.POST("/:id/pay", c.changeState(c.payOrder, "order paid"))
		orderGroup.POST("/:id/confirm", c.changeState(c.confirmOrder, "order confirmed"))
		orderGroup.POST("/:id/complete", c.changeState(c.completeOrder, "order completed"))
		orderGroup.POST("/:id/cancel", c.changeState(c.cancelOrder, "order cancelled"))
	}
}

// Checkout POST /api/v1/orders/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	var req orderapp.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	id, err := c.checkout.Execute(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, gin.H{"id": string(id)}, "order created successfully")
}

// GetOrders GET /api/v1/orders
func (c *Controller) GetOrders(ctx *gin.Context) {
	orders, err := c.getOrders.Execute(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// GetOrder GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	o, err := c.getOrder.Execute(ctx.Request.Context(), order.ID(ctx.Param("id")))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, o, "order retrieved successfully")
}

func (c *Controller) changeState(uc stateChange, message string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := uc.Execute(ctx.Request.Context(), order.ID(ctx.Param("id"))); err != nil {
			response.HandleAppError(ctx, err)
			return
		}
		response.HandleSuccess(ctx, nil, message)
	}
}
