package cart

import (
	"context"
	"fmt"

	"restaurant/domain/shared"
)

var (
	ErrCartNotFound           = fmt.Errorf("cart %w", shared.ErrNotFound)
	ErrConcurrentModification = fmt.Errorf("cart modified concurrently: %w", shared.ErrConflict)
)

func NewCartNotFoundError(customerID CustomerID) error {
	return shared.NewDomainError(ErrCartNotFound, "cart", "no cart for customer "+string(customerID))
}

func NewConcurrentModificationError(customerID CustomerID) error {
	return shared.NewDomainError(ErrConcurrentModification, "cart",
		"cart of customer "+string(customerID)+" was modified concurrently, please retry")
}

type IDGenerator interface {
	Generate() ID
}

// Extractor finds the single cart of a customer.
type Extractor interface {
	FindByCustomerID(ctx context.Context, customerID CustomerID) (*Cart, error)
}

// Persister stores the cart and then publishes its pending events.
type Persister interface {
	Save(ctx context.Context, cart *Cart) error
}

// Remover deletes a customer's cart. Deleting a missing cart is not an error.
type Remover interface {
	Delete(ctx context.Context, customerID CustomerID) error
}

type Repository interface {
	Extractor
	Persister
	Remover
}
