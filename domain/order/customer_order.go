/*
Package order is the customer order aggregate of the order context.

A CustomerOrder is created from a cart at checkout and then moves through
WAITING_FOR_PAYMENT, PAID, CONFIRMED, COMPLETED, or PAID to CANCELLED.
Every accepted transition records exactly one event; a rejected one
records nothing and leaves the state as it was.
*/
package order

import (
	"context"
	"time"

	"restaurant/domain/cart"
	"restaurant/domain/menu"
	"restaurant/domain/shared"
)

// CustomerOrder is the aggregate root.
type CustomerOrder struct {
	shared.Aggregate[ID]

	created    time.Time
	customerID cart.CustomerID
	address    shared.Address
	items      []OrderItem
	state      State
}

// OrderItem is a priced line. Two items are the same item when they share a meal id.
type OrderItem struct {
	mealID menu.MealID
	price  shared.Price
	count  shared.Count
}

// NewOrderItem creates a line item.
func NewOrderItem(mealID menu.MealID, price shared.Price, count shared.Count) OrderItem {
	return OrderItem{mealID: mealID, price: price, count: count}
}

func (i OrderItem) MealID() menu.MealID { return i.mealID }
func (i OrderItem) Price() shared.Price { return i.price }
func (i OrderItem) Count() shared.Count { return i.count }

// Total is price multiplied by count.
func (i OrderItem) Total() (shared.Price, error) {
	return i.price.Multiply(i.count)
}

// itemSet keeps one item per meal id. A later item replaces an earlier one in place.
func itemSet(items []OrderItem) []OrderItem {
	index := make(map[menu.MealID]int, len(items))
	result := make([]OrderItem, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.mealID]; ok {
			result[i] = item
			continue
		}
		index[item.mealID] = len(result)
		result = append(result, item)
	}
	return result
}

// ============================================================================
// Factory
// ============================================================================

// CreateFromCart turns the customer's cart into a new order waiting for payment.
func CreateFromCart(
	ctx context.Context,
	c *cart.Cart,
	address shared.Address,
	idGenerator IDGenerator,
	activeOrderRule CustomerHasActiveOrderRule,
	priceProvider MealPriceProvider,
) (*CustomerOrder, error) {
	hasActive, err := activeOrderRule.HasActiveOrder(ctx, c.CustomerID())
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, ErrAlreadyHasActiveOrder
	}

	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		price, err := priceProvider.Price(ctx, line.MealID)
		if err != nil {
			return nil, err
		}
		items = append(items, NewOrderItem(line.MealID, price, line.Count))
	}

	id := idGenerator.Generate()
	o := &CustomerOrder{
		Aggregate:  shared.NewAggregate(id, 0),
		created:    time.Now(),
		customerID: c.CustomerID(),
		address:    address,
		items:      itemSet(items),
		state:      StateWaitingForPayment,
	}
	o.AddEvent(NewOrderHasBeenCreatedEvent(id))
	return o, nil
}

// ReconstructionDTO carries stored state back into an aggregate.
// Only repositories and test fixtures should use it.
type ReconstructionDTO struct {
	ID         ID
	Created    time.Time
	CustomerID cart.CustomerID
	Address    shared.Address
	Items      []OrderItem
	State      State
	Version    int
}

// RebuildFromDTO restores an order without recording events.
func RebuildFromDTO(dto ReconstructionDTO) *CustomerOrder {
	return &CustomerOrder{
		Aggregate:  shared.NewAggregate(dto.ID, dto.Version),
		created:    dto.Created,
		customerID: dto.CustomerID,
		address:    dto.Address,
		items:      itemSet(dto.Items),
		state:      dto.State,
	}
}

// ============================================================================
// Transitions
// ============================================================================

func (o *CustomerOrder) Pay() error {
	return o.changeState(StatePaid, NewOrderHasBeenPaidEvent(o.ID()))
}

func (o *CustomerOrder) Confirm() error {
	return o.changeState(StateConfirmed, NewOrderHasBeenConfirmedEvent(o.ID()))
}

func (o *CustomerOrder) Complete() error {
	return o.changeState(StateCompleted, NewOrderHasBeenCompletedEvent(o.ID()))
}

func (o *CustomerOrder) Cancel() error {
	return o.changeState(StateCancelled, NewOrderHasBeenCancelledEvent(o.ID()))
}

func (o *CustomerOrder) changeState(next State, event shared.DomainEvent) error {
	if !o.state.CanChangeTo(next) {
		return NewInvalidStateError(o.state, next)
	}
	o.state = next
	o.AddEvent(event)
	return nil
}

// ============================================================================
// Queries
// ============================================================================

func (o *CustomerOrder) Created() time.Time          { return o.created }
func (o *CustomerOrder) CustomerID() cart.CustomerID { return o.customerID }
func (o *CustomerOrder) Address() shared.Address     { return o.address }
func (o *CustomerOrder) State() State                { return o.state }

// Items returns a copy of the line items.
func (o *CustomerOrder) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// TotalPrice sums every line.
func (o *CustomerOrder) TotalPrice() (shared.Price, error) {
	total := shared.ZeroPrice()
	for _, item := range o.items {
		line, err := item.Total()
		if err != nil {
			return shared.Price{}, err
		}
		if total, err = total.Add(line); err != nil {
			return shared.Price{}, err
		}
	}
	return total, nil
}

func (o *CustomerOrder) IsActive() bool    { return o.state.Active() }
func (o *CustomerOrder) IsCompleted() bool { return o.state == StateCompleted }
func (o *CustomerOrder) IsCancelled() bool { return o.state == StateCancelled }

var _ shared.AggregateRoot[ID] = (*CustomerOrder)(nil)
