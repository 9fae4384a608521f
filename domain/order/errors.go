package order

import (
	"errors"
	"fmt"

	"restaurant/domain/shared"
)

var (
	ErrOrderNotFound = fmt.Errorf("order %w", shared.ErrNotFound)

	// ErrConcurrentModification is the optimistic lock failure. Callers may retry.
	ErrConcurrentModification = fmt.Errorf("order modified concurrently: %w", shared.ErrConflict)

	// ErrInvalidState is returned for a transition the lifecycle does not allow.
	ErrInvalidState = errors.New("invalid order state transition")

	ErrEmptyCart             = errors.New("cart is empty")
	ErrAlreadyHasActiveOrder = errors.New("customer already has an active order")
)

// NewOrderNotFoundError wraps ErrOrderNotFound with the id and a stack.
func NewOrderNotFoundError(id ID) error {
	return shared.NewDomainError(ErrOrderNotFound, "order", "order not found: "+string(id))
}

// NewInvalidStateError names both ends of the rejected transition.
func NewInvalidStateError(current, target State) error {
	return shared.NewDomainError(ErrInvalidState, "order",
		"cannot transition from "+string(current)+" to "+string(target))
}

func NewConcurrentModificationError(id ID) error {
	return shared.NewDomainError(ErrConcurrentModification, "order",
		"order "+string(id)+" was modified by another transaction, please retry")
}
