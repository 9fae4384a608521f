package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant/application/usecase"
	"restaurant/domain/shared"
)

type kind string

func TestFromError(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		code    ErrorCode
		status  int
		message string
	}{
		{"use case not found", usecase.NewError(kind("ORDER_NOT_FOUND"), "Order not found"), "ORDER_NOT_FOUND", http.StatusNotFound, "Order not found"},
		{"use case invalid state", usecase.NewError(kind("INVALID_ORDER_STATE"), "x"), CodeInvalidOrderState, http.StatusUnprocessableEntity, "x"},
		{"use case invalid input", usecase.NewError(kind("INVALID_ADDRESS"), "Empty street"), "INVALID_ADDRESS", http.StatusBadRequest, "Empty street"},
		{"use case conflict", usecase.NewError(kind("ALREADY_EXISTS"), "dup"), CodeAlreadyExists, http.StatusConflict, "dup"},
		{"integrity fault", shared.NewIntegrityError("Rule", usecase.NewError(kind("EMPTY_ORDER"), ""), "rejected"), CodeInternal, http.StatusInternalServerError, "internal server error"},
		{"conflict sentinel", fmt.Errorf("save: %w", shared.ErrConflict), CodeConflict, http.StatusConflict, "save: conflict"},
		{"unknown", errors.New("disk on fire"), CodeInternal, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromError(tc.err)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.status, appErr.HTTPStatusCode())
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
}

func TestFromErrorNil(t *testing.T) {
	assert.Nil(t, FromError(nil))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("nope"))
	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeConflict))
}
