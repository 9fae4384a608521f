package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/config"
	"restaurant/domain/cart"
	"restaurant/domain/menu"
	"restaurant/domain/shared"
)

type fixedCartID cart.ID

func (f fixedCartID) Generate() cart.ID { return cart.ID(f) }

type fixedMealID menu.MealID

func (f fixedMealID) Generate() menu.MealID { return menu.MealID(f) }

type noDuplicates struct{}

func (noDuplicates) Exists(context.Context, menu.MealName) (bool, error) { return false, nil }

func newMeal(t *testing.T, id string) *menu.Meal {
	t.Helper()
	name, err := menu.NewMealName("Meal " + id)
	require.NoError(t, err)
	description, err := menu.NewMealDescription("tasty")
	require.NoError(t, err)
	meal, err := menu.AddMealToMenu(context.Background(), fixedMealID(id), noDuplicates{}, name, description, shared.Price{})
	require.NoError(t, err)
	return meal
}

func TestCartDocumentKeepsLineOrderAndNextVersion(t *testing.T) {
	c := cart.Create(fixedCartID("cart-1"), "customer-1")
	c.AddMeal(newMeal(t, "meal-2"))
	c.AddMeal(newMeal(t, "meal-1"))
	c.AddMeal(newMeal(t, "meal-2"))

	raw, err := encodeCart(c)
	require.NoError(t, err)

	restored, err := decodeCart(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Version())
	assert.Equal(t, cart.CustomerID("customer-1"), restored.CustomerID())
	require.Len(t, restored.Lines(), 2)
	assert.Equal(t, menu.MealID("meal-2"), restored.Lines()[0].MealID)
	assert.Equal(t, 2, restored.Lines()[0].Count.Value())
	assert.Empty(t, restored.PendingEvents())
}

func TestDecodeRejectsCorruptDocument(t *testing.T) {
	_, err := decodeCart([]byte(`{"lines":[{"meal_id":"m","count":-1}]}`))
	assert.Error(t, err)

	_, err = decodeCart([]byte(`not json`))
	assert.Error(t, err)
}

// Runs against a live server when RESTAURANT_TEST_REDIS_ADDR is set.
func TestCartRepositoryAgainstRedis(t *testing.T) {
	addr := os.Getenv("RESTAURANT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("RESTAURANT_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewCartRepository(client, nil, time.Minute)
	customerID := cart.CustomerID("customer-" + uuid.NewString())
	t.Cleanup(func() { _ = repo.Delete(ctx, customerID) })

	_, err = repo.FindByCustomerID(ctx, customerID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	c := cart.Create(fixedCartID("cart-1"), customerID)
	c.AddMeal(newMeal(t, "meal-1"))
	require.NoError(t, repo.Save(ctx, c))
	assert.Equal(t, 1, c.Version())

	stale, err := repo.FindByCustomerID(ctx, customerID)
	require.NoError(t, err)
	fresh, err := repo.FindByCustomerID(ctx, customerID)
	require.NoError(t, err)

	fresh.RemoveMeal("meal-1")
	require.NoError(t, repo.Save(ctx, fresh))

	stale.AddMeal(newMeal(t, "meal-3"))
	assert.ErrorIs(t, repo.Save(ctx, stale), cart.ErrConcurrentModification)

	ttl, err := client.TTL(ctx, cartKey(customerID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, customerID))
	_, err = client.Get(ctx, cartKey(customerID)).Result()
	assert.ErrorIs(t, err, goredis.Nil)
}
