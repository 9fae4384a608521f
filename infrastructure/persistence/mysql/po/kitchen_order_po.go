package po

import (
	"time"

	"restaurant/domain/kitchen"
	"restaurant/domain/shared"
)

type KitchenOrderPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Cooked    bool      `gorm:"not null;default:false"`
	Version   int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KitchenOrderPO) TableName() string { return "kitchen_orders" }

type KitchenOrderItemPO struct {
	OrderID  string `gorm:"primaryKey;size:64"`
	Position int    `gorm:"primaryKey"`
	MealName string `gorm:"size:255;not null"`
	Count    int    `gorm:"not null"`
}

func (KitchenOrderItemPO) TableName() string { return "kitchen_order_items" }

func FromKitchenOrderDomain(o *kitchen.KitchenOrder) (*KitchenOrderPO, []KitchenOrderItemPO) {
	row := &KitchenOrderPO{
		ID:      string(o.ID()),
		Cooked:  o.Cooked(),
		Version: o.Version() + 1,
	}
	items := o.Items()
	itemRows := make([]KitchenOrderItemPO, len(items))
	for i, item := range items {
		itemRows[i] = KitchenOrderItemPO{
			OrderID:  row.ID,
			Position: i,
			MealName: item.MealName.String(),
			Count:    item.Count.Value(),
		}
	}
	return row, itemRows
}

func (p *KitchenOrderPO) ToDomain(itemRows []KitchenOrderItemPO) (*kitchen.KitchenOrder, error) {
	items := make([]kitchen.OrderItem, 0, len(itemRows))
	for _, row := range itemRows {
		name, err := kitchen.NewMealName(row.MealName)
		if err != nil {
			return nil, err
		}
		count, err := shared.NewCount(row.Count)
		if err != nil {
			return nil, err
		}
		items = append(items, kitchen.OrderItem{MealName: name, Count: count})
	}
	return kitchen.RebuildFromDTO(kitchen.ReconstructionDTO{
		ID:      kitchen.OrderID(p.ID),
		Items:   items,
		Cooked:  p.Cooked,
		Version: p.Version,
	}), nil
}
