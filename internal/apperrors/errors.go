package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries a stable error code alongside a user-facing message and
// the underlying cause, if any.
type AppError struct {
	Code    string
	Message string
	Origin  error
}

func (e *AppError) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Origin
}

// Standard error codes for the application
const (
	ErrUnauthenticated  = "UNAUTHENTICATED"
	ErrDuplicateRequest = "DUPLICATE_REQUEST"
	ErrRateLimited      = "RATE_LIMITED"
	ErrNotFound         = "NOT_FOUND"
	ErrInvalidInput     = "INVALID_INPUT"
	ErrInfrastructure   = "INFRASTRUCTURE"
)

// Error creation helpers for the common cases

func New(code string, message string, origin error) *AppError {
	return &AppError{Code: code, Message: message, Origin: origin}
}

func NewUnauthenticated() *AppError {
	return &AppError{
		Code:    ErrUnauthenticated,
		Message: "No authenticated user for this operation",
	}
}

func NewDuplicateRequest(petID string) *AppError {
	return &AppError{
		Code:    ErrDuplicateRequest,
		Message: "You already have a pending request for this pet: " + petID,
	}
}

func NewRateLimited(current, max int) *AppError {
	return &AppError{
		Code:    ErrRateLimited,
		Message: fmt.Sprintf("Daily limit reached (%d of %d used). Try again tomorrow.", current, max),
	}
}

func NewNotFound(what string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: what + " not found",
	}
}

func NewInvalidInput(reason string) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Message: "Invalid input: " + reason,
	}
}

func NewInfrastructure(op string, origin error) *AppError {
	return &AppError{
		Code:    ErrInfrastructure,
		Message: "Infrastructure unavailable during " + op,
		Origin:  origin,
	}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf extracts the error code, defaulting to INFRASTRUCTURE for
// errors that did not originate in this application.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInfrastructure
}

// HTTPStatus maps an error code to the HTTP status handlers respond with.
func HTTPStatus(code string) int {
	switch code {
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrDuplicateRequest:
		return http.StatusConflict
	case ErrRateLimited:
		return http.StatusTooManyRequests
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrInfrastructure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
