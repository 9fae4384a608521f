/*
Package errors maps everything a handler can receive into a transport error
with a stable code.

Use-case errors keep their kind as the code. Integrity faults and unknown
errors collapse into INTERNAL_ERROR with a generic message so that no
internal detail leaks to the client.
*/
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"restaurant/application/usecase"
	"restaurant/domain/shared"
)

type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Use-case kinds that need a status other than the suffix rules below.
	CodeAlreadyExists         ErrorCode = "ALREADY_EXISTS"
	CodeAlreadyHasActiveOrder ErrorCode = "ALREADY_HAS_ACTIVE_ORDER"
	CodeInvalidOrderState     ErrorCode = "INVALID_ORDER_STATE"
	CodeEmptyCart             ErrorCode = "EMPTY_CART"
	CodeEmptyOrder            ErrorCode = "EMPTY_ORDER"
)

// AppError is the error shape returned to HTTP clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode picks the status for the code.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeAlreadyExists, CodeAlreadyHasActiveOrder:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidOrderState, CodeEmptyCart, CodeEmptyOrder:
		return http.StatusUnprocessableEntity
	case CodeInternal:
		return http.StatusInternalServerError
	}

	code := string(e.Code)
	switch {
	case strings.HasSuffix(code, "NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// Is checks the code of an AppError anywhere in the chain.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromError classifies err. It never returns nil for a non-nil err.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	// Integrity faults first: a listener may have wrapped a use-case error.
	if shared.IsIntegrityViolation(err) {
		return Wrap(err, CodeInternal, "internal server error")
	}

	if coded, ok := usecase.AsCoded(err); ok {
		message := strings.TrimPrefix(coded.Error(), coded.Code()+": ")
		return Wrap(err, ErrorCode(coded.Code()), message)
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	}
	return Wrap(err, CodeInternal, "internal server error")
}
