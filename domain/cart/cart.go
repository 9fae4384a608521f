/*
Package cart holds the customer's basket before checkout.

A customer has at most one cart. That rule lives in the storage key,
not in the aggregate.
*/
package cart

import (
	"time"

	"restaurant/domain/menu"
	"restaurant/domain/shared"
)

type (
	ID         string
	CustomerID string
)

// Line is one meal in the cart with its quantity.
type Line struct {
	MealID menu.MealID
	Count  shared.Count
}

// Cart is the aggregate root. Lines keep the order meals were first added in.
type Cart struct {
	shared.Aggregate[ID]

	customerID CustomerID
	created    time.Time
	lines      []Line
}

// Create starts an empty cart for the customer.
func Create(idGenerator IDGenerator, customerID CustomerID) *Cart {
	id := idGenerator.Generate()
	c := &Cart{
		Aggregate:  shared.NewAggregate(id, 0),
		customerID: customerID,
		created:    time.Now(),
	}
	c.AddEvent(NewCartHasBeenCreatedEvent(id, customerID))
	return c
}

type ReconstructionDTO struct {
	ID         ID
	CustomerID CustomerID
	Created    time.Time
	Lines      []Line
	Version    int
}

// RebuildFromDTO restores a cart without recording events.
func RebuildFromDTO(dto ReconstructionDTO) *Cart {
	lines := make([]Line, len(dto.Lines))
	copy(lines, dto.Lines)
	return &Cart{
		Aggregate:  shared.NewAggregate(dto.ID, dto.Version),
		customerID: dto.CustomerID,
		created:    dto.Created,
		lines:      lines,
	}
}

// AddMeal puts one more portion of the meal into the cart.
func (c *Cart) AddMeal(meal *menu.Meal) {
	mealID := meal.ID()
	if i := c.indexOf(mealID); i >= 0 {
		c.lines[i].Count = c.lines[i].Count.Increment()
	} else {
		c.lines = append(c.lines, Line{MealID: mealID, Count: shared.MustCount(1)})
	}
	c.AddEvent(NewMealAddedToCartEvent(c.ID(), mealID))
}

// RemoveMeal drops the meal entirely. Nothing is recorded if it was not there.
func (c *Cart) RemoveMeal(mealID menu.MealID) {
	i := c.indexOf(mealID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.AddEvent(NewMealRemovedFromCartEvent(c.ID(), mealID))
}

func (c *Cart) indexOf(mealID menu.MealID) int {
	for i, line := range c.lines {
		if line.MealID == mealID {
			return i
		}
	}
	return -1
}

func (c *Cart) CustomerID() CustomerID { return c.customerID }
func (c *Cart) Created() time.Time     { return c.created }

// Lines returns a copy of the cart content in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Meals returns a copy of the content keyed by meal.
func (c *Cart) Meals() map[menu.MealID]shared.Count {
	meals := make(map[menu.MealID]shared.Count, len(c.lines))
	for _, line := range c.lines {
		meals[line.MealID] = line.Count
	}
	return meals
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

var _ shared.AggregateRoot[ID] = (*Cart)(nil)
