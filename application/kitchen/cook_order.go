package kitchen

import (
	"context"
	"errors"

	"restaurant/application/usecase"
	"restaurant/domain/kitchen"
)

type CookOrderErrorKind string

const CookOrderNotFound CookOrderErrorKind = "ORDER_NOT_FOUND"

type CookOrderError = usecase.Error[CookOrderErrorKind]

type CookOrder struct {
	orders kitchen.Repository
}

func NewCookOrder(orders kitchen.Repository) *CookOrder {
	return &CookOrder{orders: orders}
}

// Execute marks the order cooked. Cooking an already cooked order does nothing.
func (uc *CookOrder) Execute(ctx context.Context, id kitchen.OrderID) error {
	order, err := uc.orders.FindByID(ctx, id)
	if errors.Is(err, kitchen.ErrOrderNotFound) {
		return usecase.NewError(CookOrderNotFound, "Order not found")
	}
	if err != nil {
		return err
	}
	if order.Cooked() {
		return nil
	}

	order.Cook()
	return uc.orders.Save(ctx, order)
}

type OrderItemInfo struct {
	MealName string `json:"meal_name"`
	Count    int    `json:"count"`
}

type OrderInfo struct {
	ID     string          `json:"id"`
	Items  []OrderItemInfo `json:"items"`
	Cooked bool            `json:"cooked"`
}

type GetOrders struct {
	orders kitchen.Extractor
}

func NewGetOrders(orders kitchen.Extractor) *GetOrders {
	return &GetOrders{orders: orders}
}

// Execute lists the kitchen board.
func (uc *GetOrders) Execute(ctx context.Context) ([]OrderInfo, error) {
	orders, err := uc.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]OrderInfo, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemInfo, 0, len(o.Items()))
		for _, item := range o.Items() {
			items = append(items, OrderItemInfo{MealName: item.MealName.String(), Count: item.Count.Value()})
		}
		result = append(result, OrderInfo{ID: string(o.ID()), Items: items, Cooked: o.Cooked()})
	}
	return result, nil
}
