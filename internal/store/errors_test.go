package store

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: http.StatusNotFound, Message: "book not found"}
	assert.Equal(t, "book not found", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("key missing")
	err := &Error{Code: http.StatusNotFound, Message: "book not found", Err: cause}
	assert.Equal(t, "book not found: key missing", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &Error{Code: http.StatusInternalServerError, Message: "write failed", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestError_WithMessage(t *testing.T) {
	custom := ErrInvalidInput.WithMessage("cart entry requires user and book")

	assert.Equal(t, "cart entry requires user and book", custom.Message)
	assert.Equal(t, ErrInvalidInput.Code, custom.Code)
	// Derived copies still match the sentinel.
	assert.ErrorIs(t, custom, ErrInvalidInput)
	// The sentinel itself must stay untouched
	assert.Equal(t, "invalid input", ErrInvalidInput.Message)
}

func TestError_WithCause(t *testing.T) {
	cause := errors.New("badger: transaction conflict")
	wrapped := ErrAlreadyExists.WithCause(cause)

	require.ErrorIs(t, wrapped, cause)
	assert.Equal(t, http.StatusConflict, wrapped.HTTPCode())
}

func TestSentinelErrors_Codes(t *testing.T) {
	tests := []struct {
		err  *Error
		code int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.HTTPCode())
	}
}
