/*
Package usecase defines the result contract shared by every use case.

A use case returns its success value and a nil error, or a *Error[K] whose
Kind belongs to a closed set declared next to the use case. Any other
error is a fault: storage failures, integrity violations raised by event
listeners during the save. Callers must not try to interpret faults.
*/
package usecase

import (
	"errors"
	"fmt"
)

// Error is an expected, named failure of a single use case.
type Error[K ~string] struct {
	Kind    K
	Message string
}

// NewError creates a typed use-case error.
func NewError[K ~string](kind K, message string) *Error[K] {
	return &Error[K]{Kind: kind, Message: message}
}

// Errorf formats the message.
func Errorf[K ~string](kind K, format string, args ...any) *Error[K] {
	return &Error[K]{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error[K]) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// Code is the kind as a plain string, used by the transport layer.
func (e *Error[K]) Code() string { return string(e.Kind) }

// Coded is satisfied by every *Error[K] regardless of K.
type Coded interface {
	error
	Code() string
}

// AsCoded extracts a use-case error from err, if there is one.
func AsCoded(err error) (Coded, bool) {
	var coded Coded
	if errors.As(err, &coded) {
		return coded, true
	}
	return nil, false
}

// Is reports whether err is a use-case error of the given kind.
func Is[K ~string](err error, kind K) bool {
	var target *Error[K]
	return errors.As(err, &target) && target.Kind == kind
}
