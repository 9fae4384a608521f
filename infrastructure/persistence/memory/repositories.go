package memory

import (
	"context"

	"restaurant/domain/cart"
	"restaurant/domain/kitchen"
	"restaurant/domain/menu"
	"restaurant/domain/order"
	"restaurant/domain/shared"
)

// ============================================================================
// Meals
// ============================================================================

type MealRepository struct {
	store *store[menu.MealID, menu.MealID, *menu.Meal, menu.ReconstructionDTO]
}

func NewMealRepository(publisher shared.DomainEventPublisher) *MealRepository {
	return &MealRepository{store: newStore[menu.MealID, menu.MealID](publisher,
		func(m *menu.Meal) menu.MealID { return m.ID() },
		func(m *menu.Meal) menu.ReconstructionDTO {
			return menu.ReconstructionDTO{
				ID:          m.ID(),
				Name:        m.Name(),
				Description: m.Description(),
				Price:       m.Price(),
				Removed:     m.Removed(),
				Version:     m.Version(),
			}
		},
		menu.RebuildFromDTO,
		func(m *menu.Meal) error { return menu.NewConcurrentModificationError(m.ID()) },
	)}
}

func (r *MealRepository) Save(ctx context.Context, meal *menu.Meal) error {
	return r.store.save(ctx, meal, func(s menu.ReconstructionDTO) int { return s.Version })
}

func (r *MealRepository) FindByID(_ context.Context, id menu.MealID) (*menu.Meal, error) {
	if meal, ok := r.store.get(id); ok {
		return meal, nil
	}
	return nil, menu.NewMealNotFoundError(id)
}

func (r *MealRepository) FindByName(_ context.Context, name menu.MealName) (*menu.Meal, error) {
	for _, meal := range r.store.all() {
		if meal.Name() == name {
			return meal, nil
		}
	}
	return nil, menu.NewMealNotFoundError(menu.MealID("name=" + name.String()))
}

func (r *MealRepository) FindAll(context.Context) ([]*menu.Meal, error) {
	return r.store.all(), nil
}

// ============================================================================
// Customer orders
// ============================================================================

type CustomerOrderRepository struct {
	store *store[order.ID, order.ID, *order.CustomerOrder, order.ReconstructionDTO]
}

func NewCustomerOrderRepository(publisher shared.DomainEventPublisher) *CustomerOrderRepository {
	return &CustomerOrderRepository{store: newStore[order.ID, order.ID](publisher,
		func(o *order.CustomerOrder) order.ID { return o.ID() },
		func(o *order.CustomerOrder) order.ReconstructionDTO {
			return order.ReconstructionDTO{
				ID:         o.ID(),
				Created:    o.Created(),
				CustomerID: o.CustomerID(),
				Address:    o.Address(),
				Items:      o.Items(),
				State:      o.State(),
				Version:    o.Version(),
			}
		},
		order.RebuildFromDTO,
		func(o *order.CustomerOrder) error { return order.NewConcurrentModificationError(o.ID()) },
	)}
}

func (r *CustomerOrderRepository) Save(ctx context.Context, o *order.CustomerOrder) error {
	return r.store.save(ctx, o, func(s order.ReconstructionDTO) int { return s.Version })
}

func (r *CustomerOrderRepository) FindByID(_ context.Context, id order.ID) (*order.CustomerOrder, error) {
	if o, ok := r.store.get(id); ok {
		return o, nil
	}
	return nil, order.NewOrderNotFoundError(id)
}

func (r *CustomerOrderRepository) FindByCustomerID(_ context.Context, customerID cart.CustomerID) ([]*order.CustomerOrder, error) {
	return shared.Filter(r.store.all(), order.ByCustomerIDSpecification{CustomerID: customerID}), nil
}

func (r *CustomerOrderRepository) FindAll(context.Context) ([]*order.CustomerOrder, error) {
	return r.store.all(), nil
}

// ============================================================================
// Carts
// ============================================================================

// CartRepository keys carts by customer: one cart per customer.
type CartRepository struct {
	store *store[cart.CustomerID, cart.ID, *cart.Cart, cart.ReconstructionDTO]
}

func NewCartRepository(publisher shared.DomainEventPublisher) *CartRepository {
	return &CartRepository{store: newStore[cart.CustomerID, cart.ID](publisher,
		func(c *cart.Cart) cart.CustomerID { return c.CustomerID() },
		func(c *cart.Cart) cart.ReconstructionDTO {
			return cart.ReconstructionDTO{
				ID:         c.ID(),
				CustomerID: c.CustomerID(),
				Created:    c.Created(),
				Lines:      c.Lines(),
				Version:    c.Version(),
			}
		},
		cart.RebuildFromDTO,
		func(c *cart.Cart) error { return cart.NewConcurrentModificationError(c.CustomerID()) },
	)}
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.store.save(ctx, c, func(s cart.ReconstructionDTO) int { return s.Version })
}

func (r *CartRepository) FindByCustomerID(_ context.Context, customerID cart.CustomerID) (*cart.Cart, error) {
	if c, ok := r.store.get(customerID); ok {
		return c, nil
	}
	return nil, cart.NewCartNotFoundError(customerID)
}

func (r *CartRepository) Delete(_ context.Context, customerID cart.CustomerID) error {
	r.store.remove(customerID)
	return nil
}

// ============================================================================
// Kitchen orders
// ============================================================================

type KitchenOrderRepository struct {
	store *store[kitchen.OrderID, kitchen.OrderID, *kitchen.KitchenOrder, kitchen.ReconstructionDTO]
}

func NewKitchenOrderRepository(publisher shared.DomainEventPublisher) *KitchenOrderRepository {
	return &KitchenOrderRepository{store: newStore[kitchen.OrderID, kitchen.OrderID](publisher,
		func(o *kitchen.KitchenOrder) kitchen.OrderID { return o.ID() },
		func(o *kitchen.KitchenOrder) kitchen.ReconstructionDTO {
			return kitchen.ReconstructionDTO{
				ID:      o.ID(),
				Items:   o.Items(),
				Cooked:  o.Cooked(),
				Version: o.Version(),
			}
		},
		kitchen.RebuildFromDTO,
		func(o *kitchen.KitchenOrder) error { return kitchen.NewConcurrentModificationError(o.ID()) },
	)}
}

func (r *KitchenOrderRepository) Save(ctx context.Context, o *kitchen.KitchenOrder) error {
	return r.store.save(ctx, o, func(s kitchen.ReconstructionDTO) int { return s.Version })
}

func (r *KitchenOrderRepository) FindByID(_ context.Context, id kitchen.OrderID) (*kitchen.KitchenOrder, error) {
	if o, ok := r.store.get(id); ok {
		return o, nil
	}
	return nil, kitchen.NewOrderNotFoundError(id)
}

func (r *KitchenOrderRepository) FindAll(context.Context) ([]*kitchen.KitchenOrder, error) {
	return r.store.all(), nil
}

var (
	_ menu.Repository    = (*MealRepository)(nil)
	_ order.Repository   = (*CustomerOrderRepository)(nil)
	_ cart.Repository    = (*CartRepository)(nil)
	_ kitchen.Repository = (*KitchenOrderRepository)(nil)
)
