package menu

import (
	"errors"
	"fmt"

	"restaurant/domain/shared"
)

var (
	ErrMealNotFound           = fmt.Errorf("meal %w", shared.ErrNotFound)
	ErrMealAlreadyExists      = errors.New("meal with the same name already exists")
	ErrEmptyMealName          = errors.New("meal name is empty")
	ErrEmptyDescription       = errors.New("meal description is empty")
	ErrConcurrentModification = fmt.Errorf("meal modified concurrently: %w", shared.ErrConflict)
)

func NewMealNotFoundError(id MealID) error {
	return shared.NewDomainError(ErrMealNotFound, "meal", "meal not found: "+string(id))
}

// NewMealAlreadyExistsError reports a name taken by another meal, found when
// storage rejects the insert.
func NewMealAlreadyExistsError(name MealName) error {
	return shared.NewDomainError(ErrMealAlreadyExists, "meal", "meal already exists: "+name.String())
}

func NewConcurrentModificationError(id MealID) error {
	return shared.NewDomainError(ErrConcurrentModification, "meal",
		"meal "+string(id)+" was modified by another transaction, please retry")
}
