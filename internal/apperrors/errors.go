package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing, invalid or expired credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrTokenReuse indicates that a refresh token which is no longer the stored one was presented.
// It is an ErrUnauthorized for status mapping purposes.
var ErrTokenReuse = fmt.Errorf("refresh token reuse detected: %w", ErrUnauthorized)

// ErrForbidden indicates the caller is authenticated but may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP status code and a client-safe message alongside the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validationf builds an ErrValidation wrapped with a client-facing message.
func Validationf(format string, args ...any) *AppError {
	return NewAppError(http.StatusBadRequest, fmt.Sprintf(format, args...), ErrValidation)
}

// Unauthorizedf builds an ErrUnauthorized wrapped with a client-facing message.
func Unauthorizedf(format string, args ...any) *AppError {
	return NewAppError(http.StatusUnauthorized, fmt.Sprintf(format, args...), ErrUnauthorized)
}

// StatusCode maps an error onto the HTTP status code it should be reported with.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
