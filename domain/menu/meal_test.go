package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/domain/shared"
)

type staticID MealID

func (s staticID) Generate() MealID { return MealID(s) }

type existsStub bool

func (e existsStub) Exists(context.Context, MealName) (bool, error) { return bool(e), nil }

func newMeal(t *testing.T) *Meal {
	t.Helper()
	name, err := NewMealName("Borsch")
	require.NoError(t, err)
	description, err := NewMealDescription("Beet soup")
	require.NoError(t, err)
	price, err := shared.NewPrice(450)
	require.NoError(t, err)

	meal, err := AddMealToMenu(context.Background(), staticID("meal-1"), existsStub(false), name, description, price)
	require.NoError(t, err)
	return meal
}

func TestAddMealToMenu(t *testing.T) {
	meal := newMeal(t)

	assert.Equal(t, MealID("meal-1"), meal.ID())
	assert.True(t, meal.Visible())
	events := meal.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventMealAddedToMenu, events[0].EventName())
}

func TestAddMealToMenuRejectsDuplicateName(t *testing.T) {
	name, _ := NewMealName("Borsch")
	description, _ := NewMealDescription("Beet soup")

	_, err := AddMealToMenu(context.Background(), staticID("meal-1"), existsStub(true), name, description, shared.ZeroPrice())
	assert.ErrorIs(t, err, ErrMealAlreadyExists)
}

func TestRemoveFromMenuIsIdempotent(t *testing.T) {
	meal := newMeal(t)
	meal.PullEvents()

	meal.RemoveFromMenu()
	meal.RemoveFromMenu()

	assert.False(t, meal.Visible())
	events := meal.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventMealRemovedFromMenu, events[0].EventName())
}

func TestValueObjects(t *testing.T) {
	_, err := NewMealName("  ")
	assert.ErrorIs(t, err, ErrEmptyMealName)
	_, err = NewMealDescription("")
	assert.ErrorIs(t, err, ErrEmptyDescription)
}
