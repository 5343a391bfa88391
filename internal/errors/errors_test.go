package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/errors"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
	}{
		{"not found", errors.NewNotFoundError("lesson", "l99"), errors.ErrCodeNotFound, http.StatusNotFound},
		{"validation", errors.NewValidationError("pin", "must be 4-6 digits"), errors.ErrCodeValidation, http.StatusBadRequest},
		{"auth mismatch", errors.NewAuthMismatchError("Incorrect PIN. Please try again."), errors.ErrCodeAuthMismatch, http.StatusUnauthorized},
		{"unauthorized", errors.NewUnauthorizedError(), errors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"invalid transition", errors.NewInvalidTransitionError("advance", "presenting"), errors.ErrCodeInvalidTransition, http.StatusConflict},
		{"not gradable", errors.NewNotGradableError("matching"), errors.ErrCodeNotGradable, http.StatusUnprocessableEntity},
		{"locked", errors.NewLockedError("lesson", "l5"), errors.ErrCodeLocked, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestInternalErrorWraps(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", errors.NewInvalidTransitionError("advance", "presenting"))

	assert.True(t, errors.IsInvalidTransition(wrapped))
	assert.False(t, errors.IsNotFound(wrapped))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "cannot advance while presenting", appErr.Message)
}

func TestPredicatesOnPlainErrors(t *testing.T) {
	assert.False(t, errors.IsValidation(stderrors.New("plain")))
	assert.False(t, errors.IsAuthMismatch(nil))
}
