/*
Package menu holds the use cases that manage and show the menu.
*/
package menu

import (
	"context"
	"errors"

	"restaurant/application/usecase"
	"restaurant/domain/menu"
	"restaurant/domain/shared"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

type GetMenu struct {
	meals menu.Extractor
}

func NewGetMenu(meals menu.Extractor) *GetMenu {
	return &GetMenu{meals: meals}
}

// Execute lists the meals that have not been removed.
func (uc *GetMenu) Execute(ctx context.Context) ([]MealInfo, error) {
	meals, err := uc.meals.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	visible := shared.Filter(meals, shared.SpecFunc[*menu.Meal]((*menu.Meal).Visible))
	result := make([]MealInfo, 0, len(visible))
	for _, meal := range visible {
		result = append(result, toMealInfo(meal))
	}
	return result, nil
}

type GetMealByID struct {
	meals menu.Extractor
}

func NewGetMealByID(meals menu.Extractor) *GetMealByID {
	return &GetMealByID{meals: meals}
}

// Execute returns a meal on the menu. Removed meals are reported as not found.
func (uc *GetMealByID) Execute(ctx context.Context, id menu.MealID) (*MealInfo, error) {
	meal, err := findVisible(ctx, uc.meals, id)
	if err != nil {
		return nil, err
	}
	info := toMealInfo(meal)
	return &info, nil
}

func findVisible(ctx context.Context, meals menu.Extractor, id menu.MealID) (*menu.Meal, error) {
	meal, err := meals.FindByID(ctx, id)
	if errors.Is(err, menu.ErrMealNotFound) {
		return nil, usecase.NewError(MealNotFound, "Meal not found")
	}
	if err != nil {
		return nil, err
	}
	if !meal.Visible() {
		return nil, usecase.NewError(MealNotFound, "Meal not found")
	}
	return meal, nil
}

type AddMealToMenu struct {
	idGenerator   menu.IDGenerator
	alreadyExists menu.AlreadyExistsRule
	meals         menu.Persister
}

func NewAddMealToMenu(idGenerator menu.IDGenerator, meals menu.Repository) *AddMealToMenu {
	return &AddMealToMenu{
		idGenerator:   idGenerator,
		alreadyExists: menu.NewNameUniquenessRule(meals),
		meals:         meals,
	}
}

// Execute validates the request, adds the meal and returns its id.
func (uc *AddMealToMenu) Execute(ctx context.Context, req AddMealRequest) (menu.MealID, error) {
	name, err := menu.NewMealName(req.Name)
	if err != nil {
		return "", usecase.NewError(AddMealInvalidName, "Empty meal name")
	}
	description, err := menu.NewMealDescription(req.Description)
	if err != nil {
		return "", usecase.NewError(AddMealInvalidDescription, "Empty description")
	}
	price, err := shared.NewPrice(req.Price)
	if err != nil {
		return "", usecase.NewError(AddMealInvalidPrice, err.Error())
	}

	meal, err := menu.AddMealToMenu(ctx, uc.idGenerator, uc.alreadyExists, name, description, price)
	if errors.Is(err, menu.ErrMealAlreadyExists) {
		return "", usecase.NewError(AddMealAlreadyExists, "Meal already exists")
	}
	if err != nil {
		return "", err
	}

	// Storage still rejects a name taken by a concurrent request.
	err = uc.meals.Save(ctx, meal)
	if errors.Is(err, menu.ErrMealAlreadyExists) {
		return "", usecase.NewError(AddMealAlreadyExists, "Meal already exists")
	}
	if err != nil {
		return "", err
	}
	logger.WithContext(ctx).Info("meal added to menu",
		zap.String("meal_id", string(meal.ID())),
		zap.String("name", name.String()))
	return meal.ID(), nil
}

type RemoveMealFromMenu struct {
	meals menu.Repository
}

func NewRemoveMealFromMenu(meals menu.Repository) *RemoveMealFromMenu {
	return &RemoveMealFromMenu{meals: meals}
}

// Execute takes the meal off the menu. Removing it again succeeds without effect.
func (uc *RemoveMealFromMenu) Execute(ctx context.Context, id menu.MealID) error {
	meal, err := uc.meals.FindByID(ctx, id)
	if errors.Is(err, menu.ErrMealNotFound) {
		return usecase.NewError(MealNotFound, "Meal not found")
	}
	if err != nil {
		return err
	}

	meal.RemoveFromMenu()
	return uc.meals.Save(ctx, meal)
}
