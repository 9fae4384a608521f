/*
Package specification turns customer order specifications into gorm scopes
so that filtering happens in SQL instead of in memory.
*/
package specification

import (
	"fmt"

	"restaurant/domain/order"
	"restaurant/domain/shared"

	"gorm.io/gorm"
)

// Scope narrows a query on the customer_orders table.
type Scope func(*gorm.DB) *gorm.DB

// CustomerOrderScope translates spec. Unknown specifications are an error.
func CustomerOrderScope(spec shared.Specification[*order.CustomerOrder]) (Scope, error) {
	switch s := spec.(type) {
	case nil:
		return func(db *gorm.DB) *gorm.DB { return db }, nil

	case shared.AndSpecification[*order.CustomerOrder]:
		left, err := CustomerOrderScope(s.Left)
		if err != nil {
			return nil, err
		}
		right, err := CustomerOrderScope(s.Right)
		if err != nil {
			return nil, err
		}
		return func(db *gorm.DB) *gorm.DB { return right(left(db)) }, nil

	case order.ByCustomerIDSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("customer_id = ?", string(s.CustomerID))
		}, nil

	case order.ByStateSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("state = ?", string(s.State))
		}, nil

	case order.ActiveSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("state IN ?", activeStates())
		}, nil

	case order.CreatedBetweenSpecification:
		return func(db *gorm.DB) *gorm.DB {
			if !s.Start.IsZero() {
				db = db.Where("created >= ?", s.Start)
			}
			if !s.End.IsZero() {
				db = db.Where("created <= ?", s.End)
			}
			return db
		}, nil
	}
	return nil, fmt.Errorf("unsupported customer order specification %T", spec)
}

func activeStates() []string {
	var states []string
	for _, s := range order.States() {
		if s.Active() {
			states = append(states, string(s))
		}
	}
	return states
}
