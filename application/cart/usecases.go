/*
Package cart holds the use cases that fill and inspect a customer's cart.
*/
package cart

import (
	"context"
	"errors"

	"restaurant/application/usecase"
	"restaurant/domain/cart"
	"restaurant/domain/menu"
)

type AddMealErrorKind string

const AddMealMealNotFound AddMealErrorKind = "MEAL_NOT_FOUND"

type AddMealError = usecase.Error[AddMealErrorKind]

type CartErrorKind string

const CartNotFound CartErrorKind = "CART_NOT_FOUND"

// CartError is returned by RemoveMealFromCart and GetCart.
type CartError = usecase.Error[CartErrorKind]

type CartLine struct {
	MealID string `json:"meal_id"`
	Count  int    `json:"count"`
}

type CartInfo struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Meals      []CartLine `json:"meals"`
	Version    int        `json:"version"`
}

func toCartInfo(c *cart.Cart) *CartInfo {
	lines := c.Lines()
	meals := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		meals = append(meals, CartLine{MealID: string(line.MealID), Count: line.Count.Value()})
	}
	return &CartInfo{
		ID:         string(c.ID()),
		CustomerID: string(c.CustomerID()),
		Meals:      meals,
		Version:    c.Version(),
	}
}

type AddMealToCart struct {
	idGenerator cart.IDGenerator
	carts       cart.Repository
	meals       menu.Extractor
}

func NewAddMealToCart(idGenerator cart.IDGenerator, carts cart.Repository, meals menu.Extractor) *AddMealToCart {
	return &AddMealToCart{idGenerator: idGenerator, carts: carts, meals: meals}
}

// Execute adds one portion of a meal, creating the cart on first use.
func (uc *AddMealToCart) Execute(ctx context.Context, customerID cart.CustomerID, mealID menu.MealID) error {
	meal, err := uc.meals.FindByID(ctx, mealID)
	if errors.Is(err, menu.ErrMealNotFound) || (err == nil && !meal.Visible()) {
		return usecase.NewError(AddMealMealNotFound, "Meal not found")
	}
	if err != nil {
		return err
	}

	c, err := uc.carts.FindByCustomerID(ctx, customerID)
	if errors.Is(err, cart.ErrCartNotFound) {
		c = cart.Create(uc.idGenerator, customerID)
	} else if err != nil {
		return err
	}

	c.AddMeal(meal)
	return uc.carts.Save(ctx, c)
}

type RemoveMealFromCart struct {
	carts cart.Repository
}

func NewRemoveMealFromCart(carts cart.Repository) *RemoveMealFromCart {
	return &RemoveMealFromCart{carts: carts}
}

// Execute drops the meal from the cart. An absent meal is not an error.
func (uc *RemoveMealFromCart) Execute(ctx context.Context, customerID cart.CustomerID, mealID menu.MealID) error {
	c, err := uc.carts.FindByCustomerID(ctx, customerID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return usecase.NewError(CartNotFound, "Cart not found")
	}
	if err != nil {
		return err
	}

	c.RemoveMeal(mealID)
	return uc.carts.Save(ctx, c)
}

type GetCart struct {
	carts cart.Extractor
}

func NewGetCart(carts cart.Extractor) *GetCart {
	return &GetCart{carts: carts}
}

func (uc *GetCart) Execute(ctx context.Context, customerID cart.CustomerID) (*CartInfo, error) {
	c, err := uc.carts.FindByCustomerID(ctx, customerID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, usecase.NewError(CartNotFound, "Cart not found")
	}
	if err != nil {
		return nil, err
	}
	return toCartInfo(c), nil
}
