package kitchen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/domain/shared"
)

func item(t *testing.T, name string, count int) OrderItem {
	t.Helper()
	mealName, err := NewMealName(name)
	require.NoError(t, err)
	return OrderItem{MealName: mealName, Count: shared.MustCount(count)}
}

func TestCreate(t *testing.T) {
	o, err := Create("order-1", []OrderItem{item(t, "Soup", 2)})
	require.NoError(t, err)

	assert.Equal(t, OrderID("order-1"), o.ID())
	assert.False(t, o.Cooked())
	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventKitchenOrderCreated, events[0].EventName())
}

func TestCreateWithoutItems(t *testing.T) {
	_, err := Create("order-1", nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCookOnce(t *testing.T) {
	o, err := Create("order-1", []OrderItem{item(t, "Soup", 1)})
	require.NoError(t, err)
	o.PullEvents()

	o.Cook()
	o.Cook()

	assert.True(t, o.Cooked())
	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventKitchenOrderCooked, events[0].EventName())
}

func TestMealName(t *testing.T) {
	_, err := NewMealName("")
	assert.ErrorIs(t, err, ErrEmptyMealName)
	assert.EqualError(t, err, "Meal name is empty")
}
