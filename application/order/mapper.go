package order

import (
	"restaurant/domain/order"
)

func toOrderResponse(o *order.CustomerOrder) (*OrderResponse, error) {
	total, err := o.TotalPrice()
	if err != nil {
		return nil, err
	}

	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			MealID: string(item.MealID()),
			Price:  item.Price().Amount(),
			Count:  item.Count().Value(),
		})
	}

	return &OrderResponse{
		ID:         string(o.ID()),
		CustomerID: string(o.CustomerID()),
		Created:    o.Created(),
		Address: Address{
			Street:   o.Address().Street(),
			Building: o.Address().Building(),
		},
		Items:      items,
		TotalPrice: total.Amount(),
		State:      string(o.State()),
		Active:     o.IsActive(),
		Version:    o.Version(),
	}, nil
}
