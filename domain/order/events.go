package order

import "restaurant/domain/shared"

const (
	EventOrderCreated   = "customer_order.created"
	EventOrderPaid      = "customer_order.paid"
	EventOrderConfirmed = "customer_order.confirmed"
	EventOrderCompleted = "customer_order.completed"
	EventOrderCancelled = "customer_order.cancelled"
)

type OrderHasBeenCreatedEvent struct {
	shared.BaseEvent
	orderID ID
}

func NewOrderHasBeenCreatedEvent(orderID ID) OrderHasBeenCreatedEvent {
	return OrderHasBeenCreatedEvent{BaseEvent: shared.NewBaseEvent(EventOrderCreated, string(orderID)), orderID: orderID}
}

func (e OrderHasBeenCreatedEvent) OrderID() ID { return e.orderID }

type OrderHasBeenPaidEvent struct {
	shared.BaseEvent
	orderID ID
}

func NewOrderHasBeenPaidEvent(orderID ID) OrderHasBeenPaidEvent {
	return OrderHasBeenPaidEvent{BaseEvent: shared.NewBaseEvent(EventOrderPaid, string(orderID)), orderID: orderID}
}

func (e OrderHasBeenPaidEvent) OrderID() ID { return e.orderID }

type OrderHasBeenConfirmedEvent struct {
	shared.BaseEvent
	orderID ID
}

func NewOrderHasBeenConfirmedEvent(orderID ID) OrderHasBeenConfirmedEvent {
	return OrderHasBeenConfirmedEvent{BaseEvent: shared.NewBaseEvent(EventOrderConfirmed, string(orderID)), orderID: orderID}
}

func (e OrderHasBeenConfirmedEvent) OrderID() ID { return e.orderID }

type OrderHasBeenCompletedEvent struct {
	shared.BaseEvent
	orderID ID
}

func NewOrderHasBeenCompletedEvent(orderID ID) OrderHasBeenCompletedEvent {
	return OrderHasBeenCompletedEvent{BaseEvent: shared.NewBaseEvent(EventOrderCompleted, string(orderID)), orderID: orderID}
}

func (e OrderHasBeenCompletedEvent) OrderID() ID { return e.orderID }

type OrderHasBeenCancelledEvent struct {
	shared.BaseEvent
	orderID ID
}

func NewOrderHasBeenCancelledEvent(orderID ID) OrderHasBeenCancelledEvent {
	return OrderHasBeenCancelledEvent{BaseEvent: shared.NewBaseEvent(EventOrderCancelled, string(orderID)), orderID: orderID}
}

func (e OrderHasBeenCancelledEvent) OrderID() ID { return e.orderID }
