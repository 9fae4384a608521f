package po

import (
	"time"

	"restaurant/domain/menu"
	"restaurant/domain/shared"
)

// MealPO is the database row of a meal. Mapping only, no behaviour.
type MealPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Name        string    `gorm:"size:255;uniqueIndex;not null"`
	Description string    `gorm:"size:1024;not null"`
	Price       int64     `gorm:"not null"`
	Removed     bool      `gorm:"not null;default:false"`
	Version     int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (MealPO) TableName() string { return "meals" }

// FromMealDomain maps the aggregate to a row carrying the version it will have after the save.
func FromMealDomain(m *menu.Meal) *MealPO {
	return &MealPO{
		ID:          string(m.ID()),
		Name:        m.Name().String(),
		Description: m.Description().String(),
		Price:       m.Price().Amount(),
		Removed:     m.Removed(),
		Version:     m.Version() + 1,
	}
}

func (p *MealPO) ToDomain() (*menu.Meal, error) {
	name, err := menu.NewMealName(p.Name)
	if err != nil {
		return nil, err
	}
	description, err := menu.NewMealDescription(p.Description)
	if err != nil {
		return nil, err
	}
	price, err := shared.NewPrice(p.Price)
	if err != nil {
		return nil, err
	}
	return menu.RebuildFromDTO(menu.ReconstructionDTO{
		ID:          menu.MealID(p.ID),
		Name:        name,
		Description: description,
		Price:       price,
		Removed:     p.Removed,
		Version:     p.Version,
	}), nil
}
