/*
Package kitchen is the kitchen context: orders waiting to be cooked.

A kitchen order shares its id with the customer order it came from and
knows meals only by name.
*/
package kitchen

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/domain/shared"
)

// OrderID has the same value as the customer order id.
type OrderID string

var (
	ErrOrderNotFound          = fmt.Errorf("kitchen order %w", shared.ErrNotFound)
	ErrEmptyOrder             = errors.New("kitchen order has no items")
	ErrEmptyMealName          = errors.New("Meal name is empty")
	ErrConcurrentModification = fmt.Errorf("kitchen order modified concurrently: %w", shared.ErrConflict)
)

func NewOrderNotFoundError(id OrderID) error {
	return shared.NewDomainError(ErrOrderNotFound, "kitchen_order", "kitchen order not found: "+string(id))
}

func NewConcurrentModificationError(id OrderID) error {
	return shared.NewDomainError(ErrConcurrentModification, "kitchen_order",
		"kitchen order "+string(id)+" was modified concurrently, please retry")
}

// MealName is the kitchen's view of a meal.
type MealName struct{ value string }

func NewMealName(value string) (MealName, error) {
	if strings.TrimSpace(value) == "" {
		return MealName{}, ErrEmptyMealName
	}
	return MealName{value: value}, nil
}

func (n MealName) String() string { return n.value }

type OrderItem struct {
	MealName MealName
	Count    shared.Count
}

// KitchenOrder is the aggregate root.
type KitchenOrder struct {
	shared.Aggregate[OrderID]

	items  []OrderItem
	cooked bool
}

// Create builds a new order to cook. At least one item is required.
func Create(id OrderID, items []OrderItem) (*KitchenOrder, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	copied := make([]OrderItem, len(items))
	copy(copied, items)

	o := &KitchenOrder{Aggregate: shared.NewAggregate(id, 0), items: copied}
	o.AddEvent(NewKitchenOrderHasBeenCreatedEvent(id))
	return o, nil
}

type ReconstructionDTO struct {
	ID      OrderID
	Items   []OrderItem
	Cooked  bool
	Version int
}

func RebuildFromDTO(dto ReconstructionDTO) *KitchenOrder {
	items := make([]OrderItem, len(dto.Items))
	copy(items, dto.Items)
	return &KitchenOrder{
		Aggregate: shared.NewAggregate(dto.ID, dto.Version),
		items:     items,
		cooked:    dto.Cooked,
	}
}

// Cook marks the order as cooked. Only the first call records an event.
func (o *KitchenOrder) Cook() {
	if o.cooked {
		return
	}
	o.cooked = true
	o.AddEvent(NewKitchenOrderHasBeenCookedEvent(o.ID()))
}

func (o *KitchenOrder) Cooked() bool { return o.cooked }

func (o *KitchenOrder) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

var _ shared.AggregateRoot[OrderID] = (*KitchenOrder)(nil)
