package integration

import (
	"context"
	"time"

	"restaurant/domain/order"
)

// CrmOrder is the snapshot of a paid order reported to the CRM.
type CrmOrder struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customer_id"`
	Created    time.Time      `json:"created"`
	Street     string         `json:"street"`
	Building   int            `json:"building"`
	Items      []CrmOrderItem `json:"items"`
	TotalPrice int64          `json:"total_price"`
	State      string         `json:"state"`
}

type CrmOrderItem struct {
	MealID string `json:"meal_id"`
	Price  int64  `json:"price"`
	Count  int    `json:"count"`
}

// CrmProvider delivers paid orders to the CRM. Its failure semantics are its own.
type CrmProvider interface {
	Send(ctx context.Context, order CrmOrder) error
}

func toCrmOrder(o *order.CustomerOrder) (CrmOrder, error) {
	total, err := o.TotalPrice()
	if err != nil {
		return CrmOrder{}, err
	}
	items := make([]CrmOrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, CrmOrderItem{
			MealID: string(item.MealID()),
			Price:  item.Price().Amount(),
			Count:  item.Count().Value(),
		})
	}
	return CrmOrder{
		ID:         string(o.ID()),
		CustomerID: string(o.CustomerID()),
		Created:    o.Created(),
		Street:     o.Address().Street(),
		Building:   o.Address().Building(),
		Items:      items,
		TotalPrice: total.Amount(),
		State:      string(o.State()),
	}, nil
}
