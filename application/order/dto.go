package order

import "time"

// CheckoutRequest turns the customer's cart into an order.
type CheckoutRequest struct {
	CustomerID string  `json:"customer_id" binding:"required"`
	Address    Address `json:"address" binding:"required"`
}

type Address struct {
	Street   string `json:"street"`
	Building int    `json:"building"`
}

type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Created    time.Time           `json:"created"`
	Address    Address             `json:"address"`
	Items      []OrderItemResponse `json:"items"`
	TotalPrice int64               `json:"total_price"`
	State      string              `json:"state"`
	Active     bool                `json:"active"`
	Version    int                 `json:"version"`
}

type OrderItemResponse struct {
	MealID string `json:"meal_id"`
	Price  int64  `json:"price"`
	Count  int    `json:"count"`
}
