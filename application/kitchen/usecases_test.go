package kitchen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/domain/kitchen"
	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence/memory"
)

type countingPublisher struct{ events []shared.DomainEvent }

func (p *countingPublisher) Publish(_ context.Context, events []shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func TestCreateOrderIsIdempotentPerID(t *testing.T) {
	ctx := context.Background()
	publisher := &countingPublisher{}
	repo := memory.NewKitchenOrderRepository(publisher)
	handler := NewCreateOrderHandler(repo)

	req := CreateOrderRequest{ID: "order-1", Items: []CreateOrderItem{{MealName: "Soup", Count: 2}}}
	require.NoError(t, handler.Execute(ctx, req))

	// A replay with different, even invalid, items is accepted without effect.
	require.NoError(t, handler.Execute(ctx, CreateOrderRequest{ID: "order-1"}))
	assert.Len(t, publisher.events, 1)

	o, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, o.Items(), 1)
	assert.Equal(t, 2, o.Items()[0].Count.Value())
}

func TestCreateOrderValidation(t *testing.T) {
	cases := []struct {
		name    string
		items   []CreateOrderItem
		kind    CreateOrderErrorKind
		message string
	}{
		{"negative count is checked before the name", []CreateOrderItem{{MealName: "", Count: -1}}, CreateOrderInvalidCount, "Negative value"},
		{"negative count after a valid item", []CreateOrderItem{{MealName: "Soup", Count: 1}, {MealName: "Soup", Count: -1}}, CreateOrderInvalidCount, "Negative value"},
		{"empty name",[]CreateOrderItem{{MealName: "Soup", Count: 1}, {MealName: " ", Count: 1}}, CreateOrderInvalidMealName, "Meal name is empty"},
		{"no items", nil, CreateOrderEmptyOrder, "Empty order"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := memory.NewKitchenOrderRepository(nil)
			err := NewCreateOrderHandler(repo).Execute(context.Background(), CreateOrderRequest{ID: "order-1", Items: tc.items})

			var createErr *CreateOrderError
			require.ErrorAs(t, err, &createErr)
			assert.Equal(t, tc.kind, createErr.Kind)
			assert.Equal(t, tc.message, createErr.Message)

			_, err = repo.FindByID(context.Background(), "order-1")
			assert.ErrorIs(t, err, kitchen.ErrOrderNotFound)
		})
	}
}

func TestCookOrder(t *testing.T) {
	ctx := context.Background()
	publisher := &countingPublisher{}
	repo := memory.NewKitchenOrderRepository(publisher)
	require.NoError(t, NewCreateOrderHandler(repo).Execute(ctx, CreateOrderRequest{
		ID:    "order-1",
		Items: []CreateOrderItem{{MealName: "Soup", Count: 1}},
	}))

	cook := NewCookOrder(repo)
	require.NoError(t, cook.Execute(ctx, "order-1"))
	require.NoError(t, cook.Execute(ctx, "order-1"))
	require.Len(t, publisher.events, 2)
	assert.Equal(t, kitchen.EventKitchenOrderCooked, publisher.events[1].EventName())

	board, err := NewGetOrders(repo).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.True(t, board[0].Cooked)
	assert.Equal(t, []OrderItemInfo{{MealName: "Soup", Count: 1}}, board[0].Items)

	err = cook.Execute(ctx, "missing")
	var cookErr *CookOrderError
	require.ErrorAs(t, err, &cookErr)
	assert.Equal(t, CookOrderNotFound, cookErr.Kind)
}
