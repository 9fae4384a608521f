package order

import (
	"context"

	"restaurant/domain/cart"
	"restaurant/domain/menu"
	"restaurant/domain/shared"
)

// ID identifies a customer order. The kitchen order created for it reuses the value.
type ID string

// IDGenerator allocates order ids.
type IDGenerator interface {
	Generate() ID
}

// Extractor loads orders. A missing order yields an error wrapping ErrOrderNotFound.
type Extractor interface {
	FindByID(ctx context.Context, id ID) (*CustomerOrder, error)
	FindByCustomerID(ctx context.Context, customerID cart.CustomerID) ([]*CustomerOrder, error)
	FindAll(ctx context.Context) ([]*CustomerOrder, error)
}

// Persister stores an order and publishes its pending events after the write succeeds.
type Persister interface {
	Save(ctx context.Context, order *CustomerOrder) error
}

// Repository is the extractor and persister pair.
type Repository interface {
	Extractor
	Persister
}

// MealPriceProvider prices a meal at checkout time.
type MealPriceProvider interface {
	Price(ctx context.Context, mealID menu.MealID) (shared.Price, error)
}

// CustomerHasActiveOrderRule answers whether the customer already has an order in progress.
type CustomerHasActiveOrderRule interface {
	HasActiveOrder(ctx context.Context, customerID cart.CustomerID) (bool, error)
}
