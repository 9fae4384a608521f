package menu

import "restaurant/application/usecase"

type AddMealErrorKind string

const (
	AddMealAlreadyExists      AddMealErrorKind = "ALREADY_EXISTS"
	AddMealInvalidName        AddMealErrorKind = "INVALID_NAME"
	AddMealInvalidDescription AddMealErrorKind = "INVALID_DESCRIPTION"
	AddMealInvalidPrice       AddMealErrorKind = "INVALID_PRICE"
)

type AddMealError = usecase.Error[AddMealErrorKind]

type MealErrorKind string

const MealNotFound MealErrorKind = "MEAL_NOT_FOUND"

// MealError is returned by the lookups and by removal.
type MealError = usecase.Error[MealErrorKind]
