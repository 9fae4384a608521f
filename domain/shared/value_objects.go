package shared

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrNegativeValue is returned when a count, price or building number is below zero.
	ErrNegativeValue = errors.New("Negative value")
	// ErrEmptyStreet is returned for a blank street in an address.
	ErrEmptyStreet = errors.New("Empty street")
	// ErrPriceOverflow is returned when a price calculation does not fit in int64.
	ErrPriceOverflow = errors.New("price overflow")
)

// Price is a non-negative amount in minor currency units (cents).
type Price struct {
	amount int64
}

// NewPrice validates and creates a Price.
func NewPrice(amount int64) (Price, error) {
	if amount < 0 {
		return Price{}, ErrNegativeValue
	}
	return Price{amount: amount}, nil
}

// ZeroPrice is the neutral element for Add.
func ZeroPrice() Price { return Price{} }

func (p Price) Amount() int64 { return p.amount }

// Add returns p+other.
func (p Price) Add(other Price) (Price, error) {
	if other.amount > math.MaxInt64-p.amount {
		return Price{}, ErrPriceOverflow
	}
	return Price{amount: p.amount + other.amount}, nil
}

// Multiply returns p*count.
func (p Price) Multiply(count Count) (Price, error) {
	n := int64(count.value)
	if n != 0 && p.amount > math.MaxInt64/n {
		return Price{}, ErrPriceOverflow
	}
	return Price{amount: p.amount * n}, nil
}

func (p Price) Equals(other Price) bool { return p.amount == other.amount }

func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", p.amount/100, p.amount%100)
}

// Count is a non-negative quantity.
type Count struct {
	value int
}

// NewCount validates and creates a Count.
func NewCount(value int) (Count, error) {
	if value < 0 {
		return Count{}, ErrNegativeValue
	}
	return Count{value: value}, nil
}

// MustCount panics on a negative value. Only for constants and tests.
func MustCount(value int) Count {
	c, err := NewCount(value)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Count) Value() int { return c.value }

// Increment returns c+1.
func (c Count) Increment() Count { return Count{value: c.value + 1} }

func (c Count) IsZero() bool { return c.value == 0 }

// Address is a delivery address.
type Address struct {
	street   string
	building int
}

// NewAddress validates street and building.
func NewAddress(street string, building int) (Address, error) {
	if strings.TrimSpace(street) == "" {
		return Address{}, ErrEmptyStreet
	}
	if building < 0 {
		return Address{}, ErrNegativeValue
	}
	return Address{street: street, building: building}, nil
}

func (a Address) Street() string { return a.street }
func (a Address) Building() int  { return a.building }

func (a Address) Equals(other Address) bool {
	return a.street == other.street && a.building == other.building
}
