package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeAuthMismatch      = "AUTH_MISMATCH"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeNotGradable       = "NOT_GRADABLE"
	ErrCodeLocked            = "LOCKED"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewAuthMismatchError reports a submitted secret that does not match the
// stored one. The message is shown to the user as-is.
func NewAuthMismatchError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeAuthMismatch,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewUnauthorizedError is returned by the navigation guard to JSON clients.
func NewUnauthorizedError() *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: "sign in required",
		Status:  http.StatusUnauthorized,
	}
}

// NewInvalidTransitionError reports a state machine operation that is not
// allowed from the current state.
func NewInvalidTransitionError(op, state string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot %s while %s", op, state),
		Status:  http.StatusConflict,
	}
}

// NewNotGradableError reports an answer submitted to an exercise kind that
// has no grading rule.
func NewNotGradableError(kind string) *AppError {
	return &AppError{
		Code:    ErrCodeNotGradable,
		Message: fmt.Sprintf("exercise kind %q is not yet gradable", kind),
		Status:  http.StatusUnprocessableEntity,
	}
}

// NewLockedError reports access to locked content.
func NewLockedError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeLocked,
		Message: fmt.Sprintf("%s is locked: %v", resource, id),
		Status:  http.StatusConflict,
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func IsNotFound(err error) bool          { return HasCode(err, ErrCodeNotFound) }
func IsValidation(err error) bool        { return HasCode(err, ErrCodeValidation) }
func IsAuthMismatch(err error) bool      { return HasCode(err, ErrCodeAuthMismatch) }
func IsInvalidTransition(err error) bool { return HasCode(err, ErrCodeInvalidTransition) }
func IsNotGradable(err error) bool       { return HasCode(err, ErrCodeNotGradable) }
