package po

import (
	"time"

	"restaurant/domain/cart"
	"restaurant/domain/menu"
	"restaurant/domain/order"
	"restaurant/domain/shared"
)

// CustomerOrderPO is the order row. Items live in their own table and are
// loaded explicitly; no gorm associations cross the aggregate boundary.
type CustomerOrderPO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	CustomerID string    `gorm:"size:64;index;not null"`
	Created    time.Time `gorm:"index;not null"`
	Street     string    `gorm:"size:255;not null"`
	Building   int       `gorm:"not null"`
	State      string    `gorm:"size:32;index;not null"`
	Version    int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (CustomerOrderPO) TableName() string { return "customer_orders" }

type CustomerOrderItemPO struct {
	OrderID  string `gorm:"primaryKey;size:64"`
	Position int    `gorm:"primaryKey"`
	MealID   string `gorm:"size:64;not null"`
	Price    int64  `gorm:"not null"`
	Count    int    `gorm:"not null"`
}

func (CustomerOrderItemPO) TableName() string { return "customer_order_items" }

func FromCustomerOrderDomain(o *order.CustomerOrder) (*CustomerOrderPO, []CustomerOrderItemPO) {
	row := &CustomerOrderPO{
		ID:         string(o.ID()),
		CustomerID: string(o.CustomerID()),
		Created:    o.Created(),
		Street:     o.Address().Street(),
		Building:   o.Address().Building(),
		State:      string(o.State()),
		Version:    o.Version() + 1,
	}

	items := o.Items()
	itemRows := make([]CustomerOrderItemPO, len(items))
	for i, item := range items {
		itemRows[i] = CustomerOrderItemPO{
			OrderID:  row.ID,
			Position: i,
			MealID:   string(item.MealID()),
			Price:    item.Price().Amount(),
			Count:    item.Count().Value(),
		}
	}
	return row, itemRows
}

func (p *CustomerOrderPO) ToDomain(itemRows []CustomerOrderItemPO) (*order.CustomerOrder, error) {
	address, err := shared.NewAddress(p.Street, p.Building)
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(itemRows))
	for _, row := range itemRows {
		price, err := shared.NewPrice(row.Price)
		if err != nil {
			return nil, err
		}
		count, err := shared.NewCount(row.Count)
		if err != nil {
			return nil, err
		}
		items = append(items, order.NewOrderItem(menu.MealID(row.MealID), price, count))
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         order.ID(p.ID),
		Created:    p.Created,
		CustomerID: cart.CustomerID(p.CustomerID),
		Address:    address,
		Items:      items,
		State:      order.State(p.State),
		Version:    p.Version,
	}), nil
}
