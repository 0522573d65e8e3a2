package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrPinMismatch indicates a PIN verification attempt did not match the stored PIN.
// Recoverable: the caller may retry immediately, there is no lockout policy.
var ErrPinMismatch = errors.New("pin mismatch")

// ErrSessionLocked indicates the session lock gate rejected a request because
// the session has not verified its PIN yet (or was re-locked by idle timeout).
var ErrSessionLocked = errors.New("session locked")

// ErrUndoExpired indicates an undo was requested after the delete grace window elapsed.
var ErrUndoExpired = errors.New("undo window expired")

// AppError carries an HTTP-ish status code alongside the message, used by the
// repository layer for infrastructure failures.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
