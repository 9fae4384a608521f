package order

import (
	"context"

	"restaurant/domain/cart"
	"restaurant/domain/shared"
)

// ActiveOrderRule implements CustomerHasActiveOrderRule on top of an Extractor.
// It only reads; it never saves.
type ActiveOrderRule struct {
	extractor Extractor
}

// NewActiveOrderRule creates the rule.
func NewActiveOrderRule(extractor Extractor) *ActiveOrderRule {
	return &ActiveOrderRule{extractor: extractor}
}

// HasActiveOrder reports whether any order of the customer is still active.
func (r *ActiveOrderRule) HasActiveOrder(ctx context.Context, customerID cart.CustomerID) (bool, error) {
	orders, err := r.extractor.FindByCustomerID(ctx, customerID)
	if err != nil {
		return false, err
	}
	return len(shared.Filter(orders, ActiveOrdersOf(customerID))) > 0, nil
}

var _ CustomerHasActiveOrderRule = (*ActiveOrderRule)(nil)
