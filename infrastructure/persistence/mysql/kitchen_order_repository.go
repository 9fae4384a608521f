package mysql

import (
	"context"
	"errors"
	"fmt"

	"restaurant/domain/kitchen"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type KitchenOrderRepository struct {
	db    *gorm.DB
	saver *saver
}

var _ kitchen.Repository = (*KitchenOrderRepository)(nil)

func (r *KitchenOrderRepository) Save(ctx context.Context, o *kitchen.KitchenOrder) error {
	return r.saver.save(ctx, o, func(ctx context.Context) error {
		db := getDB(ctx, r.db)
		row, items := po.FromKitchenOrderDomain(o)

		if o.Version() == 0 {
			if err := db.Create(row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return kitchen.NewConcurrentModificationError(o.ID())
				}
				return fmt.Errorf("failed to insert kitchen order: %w", err)
			}
			if err := db.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to insert kitchen order items: %w", err)
			}
			return nil
		}

		result := db.Model(&po.KitchenOrderPO{}).
			Where("id = ? AND version = ?", row.ID, o.Version()).
			Updates(map[string]any{"cooked": row.Cooked, "version": row.Version})
		if result.Error != nil {
			return fmt.Errorf("failed to update kitchen order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return kitchen.NewConcurrentModificationError(o.ID())
		}
		return nil
	})
}

func (r *KitchenOrderRepository) FindByID(ctx context.Context, id kitchen.OrderID) (*kitchen.KitchenOrder, error) {
	db := getDB(ctx, r.db)
	var row po.KitchenOrderPO
	err := db.Where("id = ?", string(id)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, kitchen.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	var items []po.KitchenOrderItemPO
	if err := db.Where("order_id = ?", row.ID).Order("position").Find(&items).Error; err != nil {
		return nil, err
	}
	return row.ToDomain(items)
}

func (r *KitchenOrderRepository) FindAll(ctx context.Context) ([]*kitchen.KitchenOrder, error) {
	db := getDB(ctx, r.db)
	var rows []po.KitchenOrderPO
	if err := db.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*kitchen.KitchenOrder{}, nil
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	var items []po.KitchenOrderItemPO
	if err := db.Where("order_id IN ?", ids).Order("order_id").Order("position").Find(&items).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[string][]po.KitchenOrderItemPO, len(rows))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	orders := make([]*kitchen.KitchenOrder, 0, len(rows))
	for i := range rows {
		o, err := rows[i].ToDomain(byOrder[rows[i].ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
