/*
Package kitchen holds the kitchen context use cases.
*/
package kitchen

import (
	"context"
	"errors"

	"restaurant/application/usecase"
	"restaurant/domain/kitchen"
	"restaurant/domain/shared"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

type CreateOrderErrorKind string

const (
	CreateOrderInvalidCount    CreateOrderErrorKind = "INVALID_COUNT"
	CreateOrderInvalidMealName CreateOrderErrorKind = "INVALID_MEAL_NAME"
	CreateOrderEmptyOrder      CreateOrderErrorKind = "EMPTY_ORDER"
)

type CreateOrderError = usecase.Error[CreateOrderErrorKind]

// CreateOrderRequest is the kitchen's view of a confirmed customer order.
type CreateOrderRequest struct {
	ID    string            `json:"id"`
	Items []CreateOrderItem `json:"items"`
}

type CreateOrderItem struct {
	MealName string `json:"meal_name"`
	Count    int    `json:"count"`
}

// CreateOrder is what the order context calls to hand an order to the kitchen.
type CreateOrder interface {
	Execute(ctx context.Context, req CreateOrderRequest) error
}

type CreateOrderHandler struct {
	orders kitchen.Repository
}

func NewCreateOrderHandler(orders kitchen.Repository) *CreateOrderHandler {
	return &CreateOrderHandler{orders: orders}
}

// Execute creates the kitchen order once per id. A repeated request for an
// existing id succeeds without looking at the items again.
func (h *CreateOrderHandler) Execute(ctx context.Context, req CreateOrderRequest) error {
	id := kitchen.OrderID(req.ID)

	_, err := h.orders.FindByID(ctx, id)
	if err == nil {
		logger.WithContext(ctx).Debug("kitchen order already exists", zap.String("order_id", req.ID))
		return nil
	}
	if !errors.Is(err, kitchen.ErrOrderNotFound) {
		return err
	}

	items := make([]kitchen.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		count, err := shared.NewCount(item.Count)
		if err != nil {
			return usecase.NewError(CreateOrderInvalidCount, "Negative value")
		}
		name, err := kitchen.NewMealName(item.MealName)
		if err != nil {
			return usecase.NewError(CreateOrderInvalidMealName, "Meal name is empty")
		}
		items = append(items, kitchen.OrderItem{MealName: name, Count: count})
	}

	order, err := kitchen.Create(id, items)
	if errors.Is(err, kitchen.ErrEmptyOrder) {
		return usecase.NewError(CreateOrderEmptyOrder, "Empty order")
	}
	if err != nil {
		return err
	}

	if err := h.orders.Save(ctx, order); err != nil {
		return err
	}
	logger.WithContext(ctx).Info("kitchen order created",
		zap.String("order_id", req.ID),
		zap.Int("items", len(items)))
	return nil
}

var _ CreateOrder = (*CreateOrderHandler)(nil)
