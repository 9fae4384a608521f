package order

import (
	"context"
	"errors"

	"restaurant/application/usecase"
	"restaurant/domain/order"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

// transition applies one lifecycle step to a loaded order.
type transition func(*order.CustomerOrder) error

// changeState is the common body of pay, confirm, complete and cancel.
type changeState struct {
	name   string
	apply  transition
	orders order.Repository
}

func (uc *changeState) execute(ctx context.Context, id order.ID) error {
	o, err := uc.orders.FindByID(ctx, id)
	if errors.Is(err, order.ErrOrderNotFound) {
		return usecase.NewError(OrderNotFound, "Order not found")
	}
	if err != nil {
		return err
	}

	if err := uc.apply(o); err != nil {
		if errors.Is(err, order.ErrInvalidState) {
			return usecase.NewError(InvalidOrderState, err.Error())
		}
		return err
	}

	if err := uc.orders.Save(ctx, o); err != nil {
		return err
	}

	logger.WithContext(ctx).Info("order state changed",
		zap.String("use_case", uc.name),
		zap.String("order_id", string(id)),
		zap.String("state", string(o.State())))
	return nil
}

type PayOrder struct{ changeState }

func NewPayOrder(orders order.Repository) *PayOrder {
	return &PayOrder{changeState{name: "pay", apply: (*order.CustomerOrder).Pay, orders: orders}}
}

// Execute marks the order as paid.
func (uc *PayOrder) Execute(ctx context.Context, id order.ID) error { return uc.execute(ctx, id) }

type ConfirmOrder struct{ changeState }

func NewConfirmOrder(orders order.Repository) *ConfirmOrder {
	return &ConfirmOrder{changeState{name: "confirm", apply: (*order.CustomerOrder).Confirm, orders: orders}}
}

// Execute confirms a paid order. The kitchen order is created while saving.
func (uc *ConfirmOrder) Execute(ctx context.Context, id order.ID) error { return uc.execute(ctx, id) }

type CompleteOrder struct{ changeState }

func NewCompleteOrder(orders order.Repository) *CompleteOrder {
	return &CompleteOrder{changeState{name: "complete", apply: (*order.CustomerOrder).Complete, orders: orders}}
}

func (uc *CompleteOrder) Execute(ctx context.Context, id order.ID) error { return uc.execute(ctx, id) }

type CancelOrder struct{ changeState }

func NewCancelOrder(orders order.Repository) *CancelOrder {
	return &CancelOrder{changeState{name: "cancel", apply: (*order.CustomerOrder).Cancel, orders: orders}}
}

// Execute cancels a paid order.
func (uc *CancelOrder) Execute(ctx context.Context, id order.ID) error { return uc.execute(ctx, id) }
