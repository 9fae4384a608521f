package menu

import "context"

type IDGenerator interface {
	Generate() MealID
}

// Extractor loads meals. Missing meals yield an error wrapping ErrMealNotFound.
type Extractor interface {
	FindByID(ctx context.Context, id MealID) (*Meal, error)
	FindByName(ctx context.Context, name MealName) (*Meal, error)
	FindAll(ctx context.Context) ([]*Meal, error)
}

// Persister stores a meal and then publishes its pending events.
type Persister interface {
	Save(ctx context.Context, meal *Meal) error
}

type Repository interface {
	Extractor
	Persister
}

// AlreadyExistsRule guards meal name uniqueness.
type AlreadyExistsRule interface {
	Exists(ctx context.Context, name MealName) (bool, error)
}
