package menu

import "restaurant/domain/shared"

const (
	EventMealAddedToMenu     = "meal.added_to_menu"
	EventMealRemovedFromMenu = "meal.removed_from_menu"
)

type MealHasBeenAddedToMenuEvent struct {
	shared.BaseEvent
	mealID MealID
}

func NewMealHasBeenAddedToMenuEvent(mealID MealID) MealHasBeenAddedToMenuEvent {
	return MealHasBeenAddedToMenuEvent{BaseEvent: shared.NewBaseEvent(EventMealAddedToMenu, string(mealID)), mealID: mealID}
}

func (e MealHasBeenAddedToMenuEvent) MealID() MealID { return e.mealID }

type MealHasBeenRemovedFromMenuEvent struct {
	shared.BaseEvent
	mealID MealID
}

func NewMealHasBeenRemovedFromMenuEvent(mealID MealID) MealHasBeenRemovedFromMenuEvent {
	return MealHasBeenRemovedFromMenuEvent{BaseEvent: shared.NewBaseEvent(EventMealRemovedFromMenu, string(mealID)), mealID: mealID}
}

func (e MealHasBeenRemovedFromMenuEvent) MealID() MealID { return e.mealID }
