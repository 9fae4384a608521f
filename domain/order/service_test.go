package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/domain/cart"
)

type ordersByCustomer []*CustomerOrder

func (o ordersByCustomer) FindByID(context.Context, ID) (*CustomerOrder, error) {
	return nil, NewOrderNotFoundError("")
}

func (o ordersByCustomer) FindByCustomerID(_ context.Context, id cart.CustomerID) ([]*CustomerOrder, error) {
	var result []*CustomerOrder
	for _, order := range o {
		if order.CustomerID() == id {
			result = append(result, order)
		}
	}
	return result, nil
}

func (o ordersByCustomer) FindAll(context.Context) ([]*CustomerOrder, error) { return o, nil }

func TestActiveOrderRule(t *testing.T) {
	ctx := context.Background()

	rule := NewActiveOrderRule(ordersByCustomer{orderIn(StateCompleted), orderIn(StateCancelled)})
	active, err := rule.HasActiveOrder(ctx, "customer-1")
	require.NoError(t, err)
	assert.False(t, active)

	rule = NewActiveOrderRule(ordersByCustomer{orderIn(StateCompleted), orderIn(StatePaid)})
	active, err = rule.HasActiveOrder(ctx, "customer-1")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = rule.HasActiveOrder(ctx, "someone-else")
	require.NoError(t, err)
	assert.False(t, active)
}
