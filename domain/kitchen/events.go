package kitchen

import "restaurant/domain/shared"

const (
	EventKitchenOrderCreated = "kitchen_order.created"
	EventKitchenOrderCooked  = "kitchen_order.cooked"
)

type KitchenOrderHasBeenCreatedEvent struct {
	shared.BaseEvent
	orderID OrderID
}

func NewKitchenOrderHasBeenCreatedEvent(id OrderID) KitchenOrderHasBeenCreatedEvent {
	return KitchenOrderHasBeenCreatedEvent{BaseEvent: shared.NewBaseEvent(EventKitchenOrderCreated, string(id)), orderID: id}
}

func (e KitchenOrderHasBeenCreatedEvent) OrderID() OrderID { return e.orderID }

type KitchenOrderHasBeenCookedEvent struct {
	shared.BaseEvent
	orderID OrderID
}

func NewKitchenOrderHasBeenCookedEvent(id OrderID) KitchenOrderHasBeenCookedEvent {
	return KitchenOrderHasBeenCookedEvent{BaseEvent: shared.NewBaseEvent(EventKitchenOrderCooked, string(id)), orderID: id}
}

func (e KitchenOrderHasBeenCookedEvent) OrderID() OrderID { return e.orderID }
