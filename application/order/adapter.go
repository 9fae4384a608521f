package order

import (
	"context"
	"errors"

	"restaurant/domain/menu"
	"restaurant/domain/order"
	"restaurant/domain/shared"
)

// mealPriceAdapter adapts menu.Extractor to order.MealPriceProvider.
// A cart that references a meal the menu does not know is a data fault.
type mealPriceAdapter struct {
	meals menu.Extractor
}

// NewMealPriceProvider prices order items from the menu.
func NewMealPriceProvider(meals menu.Extractor) order.MealPriceProvider {
	return &mealPriceAdapter{meals: meals}
}

func (a *mealPriceAdapter) Price(ctx context.Context, mealID menu.MealID) (shared.Price, error) {
	meal, err := a.meals.FindByID(ctx, mealID)
	if errors.Is(err, menu.ErrMealNotFound) {
		return shared.Price{}, shared.NewIntegrityError("MealPriceProvider", err, "meal %s is in a cart but not on the menu", mealID)
	}
	if err != nil {
		return shared.Price{}, err
	}
	return meal.Price(), nil
}
