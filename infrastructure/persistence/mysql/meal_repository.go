package mysql

import (
	"context"
	"errors"
	"fmt"

	"restaurant/domain/menu"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type MealRepository struct {
	db    *gorm.DB
	saver *saver
}

var _ menu.Repository = (*MealRepository)(nil)

func (r *MealRepository) Save(ctx context.Context, meal *menu.Meal) error {
	return r.saver.save(ctx, meal, func(ctx context.Context) error {
		return r.write(ctx, meal)
	})
}

func (r *MealRepository) write(ctx context.Context, meal *menu.Meal) error {
	db := getDB(ctx, r.db)
	row := po.FromMealDomain(meal)

	if meal.Version() == 0 {
		return r.insert(db, meal, row)
	}

	result := db.Model(&po.MealPO{}).
		Where("id = ? AND version = ?", row.ID, meal.Version()).
		Updates(map[string]any{
			"name":        row.Name,
			"description": row.Description,
			"price":       row.Price,
			"removed":     row.Removed,
			"version":     row.Version,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return menu.NewConcurrentModificationError(meal.ID())
	}
	return nil
}

// insert runs in a savepoint so a duplicate key can be told apart afterwards:
// the same id means a concurrent save, another id means the name is taken.
func (r *MealRepository) insert(db *gorm.DB, meal *menu.Meal, row *po.MealPO) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(row).Error
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to insert meal: %w", err)
	}

	var sameID int64
	if err := db.Model(&po.MealPO{}).Where("id = ?", row.ID).Count(&sameID).Error; err != nil {
		return fmt.Errorf("failed to inspect duplicate meal: %w", err)
	}
	if sameID > 0 {
		return menu.NewConcurrentModificationError(meal.ID())
	}
	return menu.NewMealAlreadyExistsError(meal.Name())
}

func (r *MealRepository) FindByID(ctx context.Context, id menu.MealID) (*menu.Meal, error) {
	var row po.MealPO
	err := getDB(ctx, r.db).Where("id = ?", string(id)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, menu.NewMealNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return row.ToDomain()
}

func (r *MealRepository) FindByName(ctx context.Context, name menu.MealName) (*menu.Meal, error) {
	var row po.MealPO
	err := getDB(ctx, r.db).Where("name = ?", name.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, menu.NewMealNotFoundError(menu.MealID("name=" + name.String()))
	}
	if err != nil {
		return nil, err
	}
	return row.ToDomain()
}

func (r *MealRepository) FindAll(ctx context.Context) ([]*menu.Meal, error) {
	var rows []po.MealPO
	if err := getDB(ctx, r.db).Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	meals := make([]*menu.Meal, 0, len(rows))
	for i := range rows {
		meal, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}
	return meals, nil
}
