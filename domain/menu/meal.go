/*
Package menu holds the Meal aggregate of the order context.

Meals are added once per unique name and can be taken off the menu.
Removal is permanent and idempotent: only the first call records an event.
*/
package menu

import (
	"context"
	"strings"

	"restaurant/domain/shared"
)

// MealID identifies a meal.
type MealID string

// MealName is a non-empty meal name.
type MealName struct{ value string }

// NewMealName validates a name.
func NewMealName(value string) (MealName, error) {
	if strings.TrimSpace(value) == "" {
		return MealName{}, ErrEmptyMealName
	}
	return MealName{value: value}, nil
}

func (n MealName) String() string { return n.value }

// MealDescription is a non-empty description.
type MealDescription struct{ value string }

// NewMealDescription validates a description.
func NewMealDescription(value string) (MealDescription, error) {
	if strings.TrimSpace(value) == "" {
		return MealDescription{}, ErrEmptyDescription
	}
	return MealDescription{value: value}, nil
}

func (d MealDescription) String() string { return d.value }

// Meal is the aggregate root.
type Meal struct {
	shared.Aggregate[MealID]

	name        MealName
	description MealDescription
	price       shared.Price
	removed     bool
}

// AddMealToMenu creates a meal unless one with the same name already exists.
func AddMealToMenu(
	ctx context.Context,
	idGenerator IDGenerator,
	alreadyExists AlreadyExistsRule,
	name MealName,
	description MealDescription,
	price shared.Price,
) (*Meal, error) {
	exists, err := alreadyExists.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMealAlreadyExists
	}

	id := idGenerator.Generate()
	meal := &Meal{
		Aggregate:   shared.NewAggregate(id, 0),
		name:        name,
		description: description,
		price:       price,
	}
	meal.AddEvent(NewMealHasBeenAddedToMenuEvent(id))
	return meal, nil
}

// ReconstructionDTO is the stored form of a meal. Repositories and fixtures only.
type ReconstructionDTO struct {
	ID          MealID
	Name        MealName
	Description MealDescription
	Price       shared.Price
	Removed     bool
	Version     int
}

// RebuildFromDTO restores a meal without recording events.
func RebuildFromDTO(dto ReconstructionDTO) *Meal {
	return &Meal{
		Aggregate:   shared.NewAggregate(dto.ID, dto.Version),
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		removed:     dto.Removed,
	}
}

// RemoveFromMenu hides the meal. Calling it again does nothing.
func (m *Meal) RemoveFromMenu() {
	if m.removed {
		return
	}
	m.removed = true
	m.AddEvent(NewMealHasBeenRemovedFromMenuEvent(m.ID()))
}

// Visible is true until the meal is removed.
func (m *Meal) Visible() bool { return !m.removed }

func (m *Meal) Name() MealName               { return m.name }
func (m *Meal) Description() MealDescription { return m.description }
func (m *Meal) Price() shared.Price          { return m.price }
func (m *Meal) Removed() bool                { return m.removed }

var _ shared.AggregateRoot[MealID] = (*Meal)(nil)
