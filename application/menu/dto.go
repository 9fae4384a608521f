package menu

import "restaurant/domain/menu"

type AddMealRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       int64  `json:"price"`
}

// MealInfo is a meal as shown on the menu. Price is in cents.
type MealInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Version     int    `json:"version"`
}

func toMealInfo(m *menu.Meal) MealInfo {
	return MealInfo{
		ID:          string(m.ID()),
		Name:        m.Name().String(),
		Description: m.Description().String(),
		Price:       m.Price().Amount(),
		Version:     m.Version(),
	}
}
