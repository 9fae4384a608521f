package order

import (
	"context"
	"errors"

	"restaurant/application/usecase"
	"restaurant/domain/order"
)

type GetOrderByID struct {
	orders order.Extractor
}

func NewGetOrderByID(orders order.Extractor) *GetOrderByID {
	return &GetOrderByID{orders: orders}
}

func (uc *GetOrderByID) Execute(ctx context.Context, id order.ID) (*OrderResponse, error) {
	o, err := uc.orders.FindByID(ctx, id)
	if errors.Is(err, order.ErrOrderNotFound) {
		return nil, usecase.NewError(GetOrderNotFound, "Order not found")
	}
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o)
}

type GetOrders struct {
	orders order.Extractor
}

func NewGetOrders(orders order.Extractor) *GetOrders {
	return &GetOrders{orders: orders}
}

// Execute lists every order, oldest first as the extractor returns them.
func (uc *GetOrders) Execute(ctx context.Context) ([]*OrderResponse, error) {
	orders, err := uc.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp, err := toOrderResponse(o)
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}
	return result, nil
}
