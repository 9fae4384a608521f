package cart

import (
	"restaurant/domain/menu"
	"restaurant/domain/shared"
)

const (
	EventCartCreated         = "cart.created"
	EventMealAddedToCart     = "cart.meal_added"
	EventMealRemovedFromCart = "cart.meal_removed"
)

type CartHasBeenCreatedEvent struct {
	shared.BaseEvent
	customerID CustomerID
}

func NewCartHasBeenCreatedEvent(cartID ID, customerID CustomerID) CartHasBeenCreatedEvent {
	return CartHasBeenCreatedEvent{BaseEvent: shared.NewBaseEvent(EventCartCreated, string(cartID)), customerID: customerID}
}

func (e CartHasBeenCreatedEvent) CustomerID() CustomerID { return e.customerID }

type MealAddedToCartEvent struct {
	shared.BaseEvent
	mealID menu.MealID
}

func NewMealAddedToCartEvent(cartID ID, mealID menu.MealID) MealAddedToCartEvent {
	return MealAddedToCartEvent{BaseEvent: shared.NewBaseEvent(EventMealAddedToCart, string(cartID)), mealID: mealID}
}

func (e MealAddedToCartEvent) MealID() menu.MealID { return e.mealID }

type MealRemovedFromCartEvent struct {
	shared.BaseEvent
	mealID menu.MealID
}

func NewMealRemovedFromCartEvent(cartID ID, mealID menu.MealID) MealRemovedFromCartEvent {
	return MealRemovedFromCartEvent{BaseEvent: shared.NewBaseEvent(EventMealRemovedFromCart, string(cartID)), mealID: mealID}
}

func (e MealRemovedFromCartEvent) MealID() menu.MealID { return e.mealID }
