package mysql

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"restaurant/domain/cart"
	"restaurant/domain/kitchen"
	"restaurant/domain/menu"
	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence/retry"
)

type capturingPublisher struct {
	events  []shared.DomainEvent
	onEvent func(ctx context.Context, event shared.DomainEvent)
}

func (p *capturingPublisher) Publish(ctx context.Context, events []shared.DomainEvent) error {
	for _, event := range events {
		p.events = append(p.events, event)
		if p.onEvent != nil {
			p.onEvent(ctx, event)
		}
	}
	return nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &Config{
		Driver:     "sqlite",
		SQLitePath: "file:" + name + "?mode=memory&cache=shared",
		LogLevel:   "silent",
	}
	db, err := cfg.Connect()
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestRepositories(t *testing.T, publisher shared.DomainEventPublisher) *Repositories {
	t.Helper()
	retryConfig := retry.DefaultConfig
	retryConfig.InitialDelay = 0
	return NewRepositories(openTestDB(t), publisher, retryConfig)
}

type fixedMealID menu.MealID

func (f fixedMealID) Generate() menu.MealID { return menu.MealID(f) }

type fixedOrderID order.ID

func (f fixedOrderID) Generate() order.ID { return order.ID(f) }

type fixedCartID cart.ID

func (f fixedCartID) Generate() cart.ID { return cart.ID(f) }

type noDuplicates struct{}

func (noDuplicates) Exists(context.Context, menu.MealName) (bool, error) { return false, nil }

type noActiveOrder struct{}

func (noActiveOrder) HasActiveOrder(context.Context, cart.CustomerID) (bool, error) { return false, nil }

type flatPrice int64

func (p flatPrice) Price(context.Context, menu.MealID) (shared.Price, error) {
	return shared.NewPrice(int64(p))
}

func newMeal(t *testing.T, id, name string) *menu.Meal {
	t.Helper()
	mealName, err := menu.NewMealName(name)
	require.NoError(t, err)
	description, err := menu.NewMealDescription("tasty")
	require.NoError(t, err)
	price, err := shared.NewPrice(250)
	require.NoError(t, err)
	meal, err := menu.AddMealToMenu(context.Background(), fixedMealID(id), noDuplicates{}, mealName, description, price)
	require.NoError(t, err)
	return meal
}

func newOrder(t *testing.T, id string, customerID cart.CustomerID, meals ...*menu.Meal) *order.CustomerOrder {
	t.Helper()
	c := cart.Create(fixedCartID("cart-"+id), customerID)
	for _, meal := range meals {
		c.AddMeal(meal)
	}
	address, err := shared.NewAddress("Main street", 7)
	require.NoError(t, err)
	o, err := order.CreateFromCart(context.Background(), c, address, fixedOrderID(id), noActiveOrder{}, flatPrice(250))
	require.NoError(t, err)
	return o
}

func TestMealRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	publisher := &capturingPublisher{}
	repos := newTestRepositories(t, publisher)

	meal := newMeal(t, "meal-1", "Soup")
	require.NoError(t, repos.Meals.Save(ctx, meal))
	assert.Equal(t, 1, meal.Version())
	require.Len(t, publisher.events, 1)
	assert.Empty(t, meal.PendingEvents())

	loaded, err := repos.Meals.FindByID(ctx, "meal-1")
	require.NoError(t, err)
	assert.Equal(t, "Soup", loaded.Name().String())
	assert.Equal(t, int64(250), loaded.Price().Amount())
	assert.Equal(t, 1, loaded.Version())

	loaded.RemoveFromMenu()
	require.NoError(t, repos.Meals.Save(ctx, loaded))

	name, _ := menu.NewMealName("Soup")
	byName, err := repos.Meals.FindByName(ctx, name)
	require.NoError(t, err)
	assert.True(t, byName.Removed())
	assert.Equal(t, 2, byName.Version())

	all, err := repos.Meals.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repos.Meals.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, menu.ErrMealNotFound)
}

func TestStaleSaveIsRejectedWithoutPublishing(t *testing.T) {
	ctx := context.Background()
	publisher := &capturingPublisher{}
	repos := newTestRepositories(t, publisher)
	require.NoError(t, repos.Meals.Save(ctx, newMeal(t, "meal-1", "Soup")))

	first, err := repos.Meals.FindByID(ctx, "meal-1")
	require.NoError(t, err)
	second, err := repos.Meals.FindByID(ctx, "meal-1")
	require.NoError(t, err)

	first.RemoveFromMenu()
	require.NoError(t, repos.Meals.Save(ctx, first))
	publisher.events = nil

	second.RemoveFromMenu()
	err = repos.Meals.Save(ctx, second)
	assert.ErrorIs(t, err, menu.ErrConcurrentModification)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Empty(t, publisher.events)
	assert.Len(t, second.PendingEvents(), 1)

	journal, err := repos.Journal.FindByAggregateID(ctx, "meal-1")
	require.NoError(t, err)
	require.Len(t, journal, 2)
	assert.Equal(t, menu.EventMealAddedToMenu, journal[0].EventName)
	assert.Equal(t, menu.EventMealRemovedFromMenu, journal[1].EventName)

	data, err := journal[0].ToEventData()
	require.NoError(t, err)
	assert.Equal(t, "meal-1", data["meal_id"])
}

func TestDuplicateInsertIsAConflict(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t, &capturingPublisher{})
	require.NoError(t, repos.Meals.Save(ctx, newMeal(t, "meal-1", "Soup")))

	err := repos.Meals.Save(ctx, newMeal(t, "meal-1", "Stew"))
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestDuplicateNameIsAlreadyExists(t *testing.T) {
	ctx := context.Background()
	publisher := &capturingPublisher{}
	repos := newTestRepositories(t, publisher)
	require.NoError(t, repos.Meals.Save(ctx, newMeal(t, "meal-1", "Soup")))

	second := newMeal(t, "meal-2", "Soup")
	err := repos.Meals.Save(ctx, second)
	assert.ErrorIs(t, err, menu.ErrMealAlreadyExists)
	assert.NotErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, 0, second.Version())

	_, err = repos.Meals.FindByID(ctx, "meal-2")
	assert.ErrorIs(t, err, menu.ErrMealNotFound)
}

func TestListenersSeeCommittedState(t *testing.T) {
	ctx := context.Background()
	publisher := &capturingPublisher{}
	repos := newTestRepositories(t, publisher)

	var seen *order.CustomerOrder
	publisher.onEvent = func(ctx context.Context, event shared.DomainEvent) {
		if event.EventName() == order.EventOrderCreated {
			seen, _ = repos.Orders.FindByID(ctx, order.ID(event.GetAggregateID()))
		}
	}

	require.NoError(t, repos.Orders.Save(ctx, newOrder(t, "order-1", "customer-1", newMeal(t, "meal-1", "Soup"))))
	require.NotNil(t, seen)
	assert.Equal(t, 1, seen.Version())
}

func TestCustomerOrderRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t, &capturingPublisher{})

	soup := newMeal(t, "meal-1", "Soup")
	stew := newMeal(t, "meal-2", "Stew")
	first := newOrder(t, "order-1", "customer-1", soup, stew, soup)
	require.NoError(t, repos.Orders.Save(ctx, first))
	require.NoError(t, repos.Orders.Save(ctx, newOrder(t, "order-2", "customer-2", stew)))

	loaded, err := repos.Orders.FindByID(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items(), 2)
	assert.Equal(t, menu.MealID("meal-1"), loaded.Items()[0].MealID())
	assert.Equal(t, 2, loaded.Items()[0].Count().Value())
	assert.Equal(t, "Main street", loaded.Address().Street())
	assert.Equal(t, order.StateWaitingForPayment, loaded.State())

	require.NoError(t, loaded.Pay())
	require.NoError(t, repos.Orders.Save(ctx, loaded))

	paid, err := repos.Orders.FindBySpecification(ctx, order.ByStateSpecification{State: order.StatePaid})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, order.ID("order-1"), paid[0].ID())

	mine, err := repos.Orders.FindByCustomerID(ctx, "customer-2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID("order-2"), mine[0].ID())

	active, err := repos.Orders.FindBySpecification(ctx, order.ActiveOrdersOf("customer-1"))
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := repos.Orders.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repos.Orders.FindBySpecification(ctx, shared.Not[*order.CustomerOrder](order.ActiveSpecification{}))
	assert.Error(t, err)

	_, err = repos.Orders.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestKitchenOrderRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t, &capturingPublisher{})

	name, err := kitchen.NewMealName("Soup")
	require.NoError(t, err)
	o, err := kitchen.Create("order-1", []kitchen.OrderItem{{MealName: name, Count: shared.MustCount(3)}})
	require.NoError(t, err)
	require.NoError(t, repos.KitchenOrders.Save(ctx, o))

	loaded, err := repos.KitchenOrders.FindByID(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, loaded.Cooked())
	require.Len(t, loaded.Items(), 1)
	assert.Equal(t, 3, loaded.Items()[0].Count.Value())

	loaded.Cook()
	require.NoError(t, repos.KitchenOrders.Save(ctx, loaded))

	all, err := repos.KitchenOrders.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Cooked())

	_, err = repos.KitchenOrders.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, kitchen.ErrOrderNotFound)
}
