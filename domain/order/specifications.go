package order

import (
	"time"

	"restaurant/domain/cart"
	"restaurant/domain/shared"
)

// ByCustomerIDSpecification matches the orders of one customer.
type ByCustomerIDSpecification struct {
	CustomerID cart.CustomerID
}

func (spec ByCustomerIDSpecification) IsSatisfiedBy(o *CustomerOrder) bool {
	return o.CustomerID() == spec.CustomerID
}

// ByStateSpecification matches orders in a given state.
type ByStateSpecification struct {
	State State
}

func (spec ByStateSpecification) IsSatisfiedBy(o *CustomerOrder) bool {
	return o.State() == spec.State
}

// ActiveSpecification matches orders that are not cancelled or completed.
type ActiveSpecification struct{}

func (ActiveSpecification) IsSatisfiedBy(o *CustomerOrder) bool {
	return o.IsActive()
}

// CreatedBetweenSpecification matches orders created in [Start, End]. Zero bounds are open.
type CreatedBetweenSpecification struct {
	Start time.Time
	End   time.Time
}

func (spec CreatedBetweenSpecification) IsSatisfiedBy(o *CustomerOrder) bool {
	created := o.Created()
	if !spec.Start.IsZero() && created.Before(spec.Start) {
		return false
	}
	if !spec.End.IsZero() && created.After(spec.End) {
		return false
	}
	return true
}

// ActiveOrdersOf matches the active orders of one customer.
func ActiveOrdersOf(customerID cart.CustomerID) shared.Specification[*CustomerOrder] {
	return shared.And[*CustomerOrder](ByCustomerIDSpecification{CustomerID: customerID}, ActiveSpecification{})
}
