package shared

// Specification is a named business predicate over T.
// In-memory code filters with it; the gorm layer translates known ones to SQL.
type Specification[T any] interface {
	IsSatisfiedBy(candidate T) bool
}

// SpecFunc adapts a plain function to Specification.
type SpecFunc[T any] func(candidate T) bool

func (f SpecFunc[T]) IsSatisfiedBy(candidate T) bool { return f(candidate) }

type AndSpecification[T any] struct {
	Left, Right Specification[T]
}

func (s AndSpecification[T]) IsSatisfiedBy(candidate T) bool {
	return s.Left.IsSatisfiedBy(candidate) && s.Right.IsSatisfiedBy(candidate)
}

// And is satisfied when both specifications are.
func And[T any](left, right Specification[T]) Specification[T] {
	return AndSpecification[T]{Left: left, Right: right}
}

type NotSpecification[T any] struct {
	Inner Specification[T]
}

func (s NotSpecification[T]) IsSatisfiedBy(candidate T) bool {
	return !s.Inner.IsSatisfiedBy(candidate)
}

func Not[T any](inner Specification[T]) Specification[T] {
	return NotSpecification[T]{Inner: inner}
}

// Filter returns the candidates that satisfy spec, preserving order.
func Filter[T any](candidates []T, spec Specification[T]) []T {
	var result []T
	for _, c := range candidates {
		if spec.IsSatisfiedBy(c) {
			result = append(result, c)
		}
	}
	return result
}
