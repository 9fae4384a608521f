package kitchen

import "context"

// Extractor loads kitchen orders. FindByID wraps ErrOrderNotFound when absent.
type Extractor interface {
	FindByID(ctx context.Context, id OrderID) (*KitchenOrder, error)
	FindAll(ctx context.Context) ([]*KitchenOrder, error)
}

// Persister stores the order and then publishes its pending events.
type Persister interface {
	Save(ctx context.Context, order *KitchenOrder) error
}

type Repository interface {
	Extractor
	Persister
}
