/*
Package order holds the use cases of the customer order lifecycle.

Each use case saves through the repository, which publishes the events the
aggregate recorded. Listener failures therefore come back from Execute as
faults, never as typed use-case errors.
*/
package order

import (
	"context"
	"errors"

	"restaurant/application/usecase"
	"restaurant/domain/cart"
	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

type Checkout struct {
	idGenerator     order.IDGenerator
	carts           cart.Extractor
	activeOrderRule order.CustomerHasActiveOrderRule
	priceProvider   order.MealPriceProvider
	orders          order.Persister
}

func NewCheckout(
	idGenerator order.IDGenerator,
	carts cart.Extractor,
	activeOrderRule order.CustomerHasActiveOrderRule,
	priceProvider order.MealPriceProvider,
	orders order.Persister,
) *Checkout {
	return &Checkout{
		idGenerator:     idGenerator,
		carts:           carts,
		activeOrderRule: activeOrderRule,
		priceProvider:   priceProvider,
		orders:          orders,
	}
}

// Execute creates an order from the cart and returns its id.
func (uc *Checkout) Execute(ctx context.Context, req CheckoutRequest) (order.ID, error) {
	address, err := shared.NewAddress(req.Address.Street, req.Address.Building)
	if err != nil {
		return "", usecase.NewError(CheckoutInvalidAddress, err.Error())
	}

	customerID := cart.CustomerID(req.CustomerID)
	c, err := uc.carts.FindByCustomerID(ctx, customerID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return "", usecase.NewError(CheckoutCartNotFound, "Cart not found")
	}
	if err != nil {
		return "", err
	}

	o, err := order.CreateFromCart(ctx, c, address, uc.idGenerator, uc.activeOrderRule, uc.priceProvider)
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		return "", usecase.NewError(CheckoutEmptyCart, "Cart is empty")
	case errors.Is(err, order.ErrAlreadyHasActiveOrder):
		return "", usecase.NewError(CheckoutAlreadyHasActiveOrder, "Customer already has an active order")
	case err != nil:
		return "", err
	}

	if err := uc.orders.Save(ctx, o); err != nil {
		return "", err
	}

	logger.WithContext(ctx).Info("order created",
		zap.String("order_id", string(o.ID())),
		zap.String("customer_id", string(customerID)))
	return o.ID(), nil
}
