package mysql

import (
	"context"
	"errors"
	"fmt"

	"restaurant/domain/cart"
	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence/mysql/po"
	"restaurant/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

type CustomerOrderRepository struct {
	db    *gorm.DB
	saver *saver
}

var _ order.Repository = (*CustomerOrderRepository)(nil)

func (r *CustomerOrderRepository) Save(ctx context.Context, o *order.CustomerOrder) error {
	return r.saver.save(ctx, o, func(ctx context.Context) error {
		return r.write(ctx, o)
	})
}

// write inserts header and items on creation. Items never change afterwards,
// so updates touch the header row only.
func (r *CustomerOrderRepository) write(ctx context.Context, o *order.CustomerOrder) error {
	db := getDB(ctx, r.db)
	row, items := po.FromCustomerOrderDomain(o)

	if o.Version() == 0 {
		if err := db.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return order.NewConcurrentModificationError(o.ID())
			}
			return fmt.Errorf("failed to insert order: %w", err)
		}
		if len(items) > 0 {
			if err := db.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to insert order items: %w", err)
			}
		}
		return nil
	}

	result := db.Model(&po.CustomerOrderPO{}).
		Where("id = ? AND version = ?", row.ID, o.Version()).
		Updates(map[string]any{
			"state":   row.State,
			"version": row.Version,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return order.NewConcurrentModificationError(o.ID())
	}
	return nil
}

func (r *CustomerOrderRepository) FindByID(ctx context.Context, id order.ID) (*order.CustomerOrder, error) {
	db := getDB(ctx, r.db)
	var row po.CustomerOrderPO
	err := db.Where("id = ?", string(id)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	orders, err := r.attachItems(db, []po.CustomerOrderPO{row})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *CustomerOrderRepository) FindByCustomerID(ctx context.Context, customerID cart.CustomerID) ([]*order.CustomerOrder, error) {
	return r.FindBySpecification(ctx, order.ByCustomerIDSpecification{CustomerID: customerID})
}

func (r *CustomerOrderRepository) FindAll(ctx context.Context) ([]*order.CustomerOrder, error) {
	return r.FindBySpecification(ctx, nil)
}

// FindBySpecification filters in SQL. Specifications without a translation are rejected.
func (r *CustomerOrderRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*order.CustomerOrder]) ([]*order.CustomerOrder, error) {
	scope, err := specification.CustomerOrderScope(spec)
	if err != nil {
		return nil, err
	}
	db := getDB(ctx, r.db)
	var rows []po.CustomerOrderPO
	if err := db.Scopes(scope).Order("created ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.attachItems(db, rows)
}

func (r *CustomerOrderRepository) attachItems(db *gorm.DB, rows []po.CustomerOrderPO) ([]*order.CustomerOrder, error) {
	if len(rows) == 0 {
		return []*order.CustomerOrder{}, nil
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	var items []po.CustomerOrderItemPO
	if err := db.Where("order_id IN ?", ids).Order("order_id").Order("position").Find(&items).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[string][]po.CustomerOrderItemPO, len(rows))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	orders := make([]*order.CustomerOrder, 0, len(rows))
	for i := range rows {
		o, err := rows[i].ToDomain(byOrder[rows[i].ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
