/*
Package idgen allocates aggregate identifiers as time-ordered UUIDv7 strings.
*/
package idgen

import (
	"github.com/google/uuid"

	"restaurant/domain/cart"
	"restaurant/domain/menu"
	"restaurant/domain/order"
)

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}

type MealIDGenerator struct{}

func (MealIDGenerator) Generate() menu.MealID { return menu.MealID(newID()) }

type OrderIDGenerator struct{}

func (OrderIDGenerator) Generate() order.ID { return order.ID(newID()) }

type CartIDGenerator struct{}

func (CartIDGenerator) Generate() cart.ID { return cart.ID(newID()) }

var (
	_ menu.IDGenerator  = MealIDGenerator{}
	_ order.IDGenerator = OrderIDGenerator{}
	_ cart.IDGenerator  = CartIDGenerator{}
)
