/*
Package integration connects the order and kitchen contexts.

Listeners run synchronously inside the save that produced the event. They
reload what the event references, translate it for the other context and
call its use case. A missing aggregate or a rejected request means the two
contexts have drifted apart; the listener reports that as an
*shared.IntegrityError and never retries.
*/
package integration

import (
	"context"
	"errors"
	"fmt"

	kitchenapp "restaurant/application/kitchen"
	"restaurant/application/usecase"
	"restaurant/domain/cart"
	"restaurant/domain/kitchen"
	"restaurant/domain/menu"
	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

// Registrar is the part of the event publisher used at startup.
type Registrar interface {
	RegisterListener(listener shared.DomainEventListener) error
}

// Register adds every listener to the publisher, stopping at the first failure.
func Register(registrar Registrar, listeners ...shared.DomainEventListener) error {
	for _, l := range listeners {
		if err := registrar.RegisterListener(l); err != nil {
			return fmt.Errorf("register %s: %w", l.Name(), err)
		}
	}
	return nil
}

func unexpectedEvent(listener string, event shared.DomainEvent) error {
	return shared.NewIntegrityError(listener, nil, "unexpected event %s (%T)", event.EventName(), event)
}

// ============================================================================
// Order confirmed -> kitchen order
// ============================================================================

type SendOrderToKitchenAfterConfirmationRule struct {
	orders      order.Extractor
	meals       menu.Extractor
	createOrder kitchenapp.CreateOrder
}

func NewSendOrderToKitchenAfterConfirmationRule(
	orders order.Extractor,
	meals menu.Extractor,
	createOrder kitchenapp.CreateOrder,
) *SendOrderToKitchenAfterConfirmationRule {
	return &SendOrderToKitchenAfterConfirmationRule{orders: orders, meals: meals, createOrder: createOrder}
}

func (r *SendOrderToKitchenAfterConfirmationRule) Name() string {
	return "SendOrderToKitchenAfterConfirmationRule"
}

func (r *SendOrderToKitchenAfterConfirmationRule) EventNames() []string {
	return []string{order.EventOrderConfirmed}
}

func (r *SendOrderToKitchenAfterConfirmationRule) Handle(ctx context.Context, event shared.DomainEvent) error {
	confirmed, ok := event.(order.OrderHasBeenConfirmedEvent)
	if !ok {
		return unexpectedEvent(r.Name(), event)
	}

	o, err := r.orders.FindByID(ctx, confirmed.OrderID())
	if errors.Is(err, order.ErrOrderNotFound) {
		return shared.NewIntegrityError(r.Name(), err, "order %s not found", confirmed.OrderID())
	}
	if err != nil {
		return err
	}

	items := make([]kitchenapp.CreateOrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		meal, err := r.meals.FindByID(ctx, item.MealID())
		if errors.Is(err, menu.ErrMealNotFound) {
			return shared.NewIntegrityError(r.Name(), err, "meal %s of order %s not found", item.MealID(), o.ID())
		}
		if err != nil {
			return err
		}
		items = append(items, kitchenapp.CreateOrderItem{
			MealName: meal.Name().String(),
			Count:    item.Count().Value(),
		})
	}

	err = r.createOrder.Execute(ctx, kitchenapp.CreateOrderRequest{ID: string(o.ID()), Items: items})
	if shared.IsIntegrityViolation(err) {
		return err
	}
	if coded, ok := usecase.AsCoded(err); ok {
		return shared.NewIntegrityError(r.Name(), coded, "kitchen rejected order %s", o.ID())
	}
	return err
}

// ============================================================================
// Order paid -> CRM
// ============================================================================

type SendOrderToCrmAfterPaymentRule struct {
	orders order.Extractor
	crm    CrmProvider
}

func NewSendOrderToCrmAfterPaymentRule(orders order.Extractor, crm CrmProvider) *SendOrderToCrmAfterPaymentRule {
	return &SendOrderToCrmAfterPaymentRule{orders: orders, crm: crm}
}

func (r *SendOrderToCrmAfterPaymentRule) Name() string { return "SendOrderToCrmAfterPaymentRule" }

func (r *SendOrderToCrmAfterPaymentRule) EventNames() []string {
	return []string{order.EventOrderPaid}
}

func (r *SendOrderToCrmAfterPaymentRule) Handle(ctx context.Context, event shared.DomainEvent) error {
	paid, ok := event.(order.OrderHasBeenPaidEvent)
	if !ok {
		return unexpectedEvent(r.Name(), event)
	}

	o, err := r.orders.FindByID(ctx, paid.OrderID())
	if errors.Is(err, order.ErrOrderNotFound) {
		return shared.NewIntegrityError(r.Name(), err, "order %s not found", paid.OrderID())
	}
	if err != nil {
		return err
	}

	crmOrder, err := toCrmOrder(o)
	if err != nil {
		return err
	}
	return r.crm.Send(ctx, crmOrder)
}

// ============================================================================
// Kitchen order cooked -> order completed
// ============================================================================

// OrderCompleter is the order context use case that completes an order.
type OrderCompleter interface {
	Execute(ctx context.Context, id order.ID) error
}

type CompleteOrderAfterCookingRule struct {
	orders        order.Extractor
	completeOrder OrderCompleter
}

func NewCompleteOrderAfterCookingRule(orders order.Extractor, completeOrder OrderCompleter) *CompleteOrderAfterCookingRule {
	return &CompleteOrderAfterCookingRule{orders: orders, completeOrder: completeOrder}
}

func (r *CompleteOrderAfterCookingRule) Name() string { return "CompleteOrderAfterCookingRule" }

func (r *CompleteOrderAfterCookingRule) EventNames() []string {
	return []string{kitchen.EventKitchenOrderCooked}
}

// Handle completes the order once. An order that is already completed, by
// hand or by an earlier delivery of the same event, is left as it is.
func (r *CompleteOrderAfterCookingRule) Handle(ctx context.Context, event shared.DomainEvent) error {
	cooked, ok := event.(kitchen.KitchenOrderHasBeenCookedEvent)
	if !ok {
		return unexpectedEvent(r.Name(), event)
	}

	id := order.ID(cooked.OrderID())
	o, err := r.orders.FindByID(ctx, id)
	if errors.Is(err, order.ErrOrderNotFound) {
		return shared.NewIntegrityError(r.Name(), err, "order %s not found", id)
	}
	if err != nil {
		return err
	}
	if o.IsCompleted() {
		logger.WithContext(ctx).Debug("order already completed",
			zap.String("order_id", string(id)))
		return nil
	}

	err = r.completeOrder.Execute(ctx, id)
	if shared.IsIntegrityViolation(err) {
		return err
	}
	if coded, ok := usecase.AsCoded(err); ok {
		return shared.NewIntegrityError(r.Name(), coded, "cannot complete order %s", id)
	}
	return err
}

// ============================================================================
// Order created -> cart removed
// ============================================================================

type RemoveCartAfterCheckoutRule struct {
	orders order.Extractor
	carts  cart.Remover
}

func NewRemoveCartAfterCheckoutRule(orders order.Extractor, carts cart.Remover) *RemoveCartAfterCheckoutRule {
	return &RemoveCartAfterCheckoutRule{orders: orders, carts: carts}
}

func (r *RemoveCartAfterCheckoutRule) Name() string { return "RemoveCartAfterCheckoutRule" }

func (r *RemoveCartAfterCheckoutRule) EventNames() []string {
	return []string{order.EventOrderCreated}
}

func (r *RemoveCartAfterCheckoutRule) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(order.OrderHasBeenCreatedEvent)
	if !ok {
		return unexpectedEvent(r.Name(), event)
	}

	o, err := r.orders.FindByID(ctx, created.OrderID())
	if errors.Is(err, order.ErrOrderNotFound) {
		return shared.NewIntegrityError(r.Name(), err, "order %s not found", created.OrderID())
	}
	if err != nil {
		return err
	}

	if err := r.carts.Delete(ctx, o.CustomerID()); err != nil {
		return err
	}
	logger.WithContext(ctx).Debug("cart removed after checkout",
		zap.String("order_id", string(o.ID())),
		zap.String("customer_id", string(o.CustomerID())))
	return nil
}

var (
	_ shared.DomainEventListener = (*SendOrderToKitchenAfterConfirmationRule)(nil)
	_ shared.DomainEventListener = (*SendOrderToCrmAfterPaymentRule)(nil)
	_ shared.DomainEventListener = (*CompleteOrderAfterCookingRule)(nil)
	_ shared.DomainEventListener = (*RemoveCartAfterCheckoutRule)(nil)
)
