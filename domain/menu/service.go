package menu

import (
	"context"
	"errors"
)

// NameUniquenessRule implements AlreadyExistsRule with a name lookup.
type NameUniquenessRule struct {
	extractor Extractor
}

func NewNameUniquenessRule(extractor Extractor) *NameUniquenessRule {
	return &NameUniquenessRule{extractor: extractor}
}

// Exists is true when any meal, removed or not, already uses the name.
func (r *NameUniquenessRule) Exists(ctx context.Context, name MealName) (bool, error) {
	_, err := r.extractor.FindByName(ctx, name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrMealNotFound) {
		return false, nil
	}
	return false, err
}

var _ AlreadyExistsRule = (*NameUniquenessRule)(nil)
