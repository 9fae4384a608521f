/*
Package shared holds the building blocks both bounded contexts use:
the aggregate base, domain event contracts, value objects and error types.

Error model:
 1. Sentinel errors classify failures for errors.Is.
 2. DomainError carries entity, field and a stack captured at construction.
    The stack is only formatted when someone asks for it (logging).
 3. IntegrityError marks a broken cross-context assumption. It is never a
    use-case outcome; callers are expected to fail the whole request.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")

	// ErrIntegrityViolation means the order and kitchen contexts drifted apart,
	// e.g. an event references an aggregate that does not exist.
	ErrIntegrityViolation = errors.New("integrity violation")
)

// ============================================================================
// DomainError
// ============================================================================

// DomainError is a structured domain failure with a captured stack.
type DomainError struct {
	// Err is the sentinel used by errors.Is.
	Err error

	// Entity names the aggregate, e.g. "order", "meal".
	Entity string

	Message string

	// Field is set for validation failures.
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the current call stack.
// skip is usually 3: runtime.Callers, CaptureStack, the constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders frames as "file:line function", runtime frames dropped, at most 10.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

// NewDomainError wraps a package sentinel with entity context and a stack.
func NewDomainError(sentinel error, entity, message string) error {
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// IntegrityError
// ============================================================================

// IntegrityError reports that an event could not be applied to the other
// context because the data it references is missing or was rejected.
type IntegrityError struct {
	// Listener is the name of the rule that detected the fault.
	Listener string
	Message  string
	// Cause is the underlying error, if any.
	Cause error

	stack []uintptr
}

// NewIntegrityError builds an IntegrityError with a formatted message.
func NewIntegrityError(listener string, cause error, format string, args ...any) error {
	return &IntegrityError{
		Listener: listener,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
		stack:    CaptureStack(3),
	}
}

func (e *IntegrityError) Error() string {
	msg := e.Listener + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrIntegrityViolation) hold for every IntegrityError.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrityViolation
}

func (e *IntegrityError) Unwrap() error {
	return e.Cause
}

func (e *IntegrityError) Stack() []string {
	return FormatStack(e.stack)
}

// IsIntegrityViolation reports whether err or anything it wraps is an integrity fault.
func IsIntegrityViolation(err error) bool {
	return errors.Is(err, ErrIntegrityViolation)
}

// Stacker is implemented by errors that can report where they were created.
type Stacker interface {
	Stack() []string
}
