package menu

import (
	"net/http"

	"restaurant/api/response"
	menuapp "restaurant/application/menu"
	"restaurant/domain/menu"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	getMenu    *menuapp.GetMenu
	getMeal    *menuapp.GetMealByID
	addMeal    *menuapp.AddMealToMenu
	removeMeal *menuapp.RemoveMealFromMenu
}

func NewController(
	getMenu *menuapp.GetMenu,
	getMeal *menuapp.GetMealByID,
	addMeal *menuapp.AddMealToMenu,
	removeMeal *menuapp.RemoveMealFromMenu,
) *Controller {
	return &Controller{getMenu: getMenu, getMeal: getMeal, addMeal: addMeal, removeMeal: removeMeal}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	menuGroup := router.Group("/menu")
	{
		menuGroup.GET("", c.GetMenu)
		menuGroup.POST("", c.AddMeal)
		menuGroup.GET("/:id", c.GetMeal)
		menuGroup.DELETE("/:id", c.RemoveMeal)
	}
}

// GetMenu GET /api/v1/menu
func (c *Controller) GetMenu(ctx *gin.Context) {
	meals, err := c.getMenu.Execute(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, meals, "menu retrieved successfully")
}

// AddMeal POST /api/v1/menu
func (c *Controller) AddMeal(ctx *gin.Context) {
	var req menuapp.AddMealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	id, err := c.addMeal.Execute(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, gin.H{"id": string(id)}, "meal added to menu")
}

// GetMeal GET /api/v1/menu/:id
func (c *Controller) GetMeal(ctx *gin.Context) {
	meal, err := c.getMeal.Execute(ctx.Request.Context(), menu.MealID(ctx.Param("id")))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, meal, "meal retrieved successfully")
}

// RemoveMeal DELETE /api/v1/menu/:id
func (c *Controller) RemoveMeal(ctx *gin.Context) {
	if err := c.removeMeal.Execute(ctx.Request.Context(), menu.MealID(ctx.Param("id"))); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "meal removed from menu")
}
