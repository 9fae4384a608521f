package cart

import (
	"net/http"

	"restaurant/api/response"
	cartapp "restaurant/application/cart"
	"restaurant/domain/cart"
	"restaurant/domain/menu"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	getCart    *cartapp.GetCart
	addMeal    *cartapp.AddMealToCart
	removeMeal *cartapp.RemoveMealFromCart
}

func NewController(getCart *cartapp.GetCart, addMeal *cartapp.AddMealToCart, removeMeal *cartapp.RemoveMealFromCart) *Controller {
	return &Controller{getCart: getCart, addMeal: addMeal, removeMeal: removeMeal}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/carts/:customerId")
	{
		cartGroup.GET("", c.GetCart)
		cartGroup.POST("/meals", c.AddMeal)
		cartGroup.DELETE("/meals/:mealId", c.RemoveMeal)
	}
}

type AddMealRequest struct {
	MealID string `json:"meal_id" binding:"required"`
}

// GetCart GET /api/v1/carts/:customerId
func (c *Controller) GetCart(ctx *gin.Context) {
	info, err := c.getCart.Execute(ctx.Request.Context(), cart.CustomerID(ctx.Param("customerId")))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, info, "cart retrieved successfully")
}

// AddMeal POST /api/v1/carts/:customerId/meals
func (c *Controller) AddMeal(ctx *gin.Context) {
	var req AddMealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customerID := cart.CustomerID(ctx.Param("customerId"))
	if err := c.addMeal.Execute(ctx.Request.Context(), customerID, menu.MealID(req.MealID)); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "meal added to cart")
}

// RemoveMeal DELETE /api/v1/carts/:customerId/meals/:mealId
func (c *Controller) RemoveMeal(ctx *gin.Context) {
	customerID := cart.CustomerID(ctx.Param("customerId"))
	mealID := menu.MealID(ctx.Param("mealId"))
	if err := c.removeMeal.Execute(ctx.Request.Context(), customerID, mealID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "meal removed from cart")
}
