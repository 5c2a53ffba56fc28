package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrUpstreamUnavailable = errors.New("upstream unreachable")
	ErrUpstreamProtocol    = errors.New("upstream protocol error")
	ErrProviderRejected    = errors.New("provider rejected request")
	ErrIncompleteRecord    = errors.New("incomplete product record")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// UpstreamUnreachable creates a 502 error for transport-level failures
// (DNS, connection, timeout, non-success HTTP status) against the provider.
func UpstreamUnreachable(err error) *AppError {
	return &AppError{
		Code:    "UPSTREAM_UNREACHABLE",
		Message: "catalog provider could not be reached",
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err),
	}
}

// UpstreamProtocol creates a 502 error for undecodable provider responses.
func UpstreamProtocol(err error) *AppError {
	return &AppError{
		Code:    "UPSTREAM_PROTOCOL",
		Message: "catalog provider returned an unreadable response",
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrUpstreamProtocol, err),
	}
}

// ProviderRejected creates a 422 error carrying the provider's own message,
// for responses that decode but are semantically rejected by the provider.
func ProviderRejected(message string) *AppError {
	return &AppError{
		Code:    "PROVIDER_REJECTED",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrProviderRejected,
	}
}

// IncompleteRecord creates a 502 error for provider records missing fields
// the presentation requires.
func IncompleteRecord(field string) *AppError {
	return &AppError{
		Code:    "INCOMPLETE_RECORD",
		Message: fmt.Sprintf("product record is missing required field %s", field),
		Status:  http.StatusBadGateway,
		Err:     ErrIncompleteRecord,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrProviderRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUpstreamUnavailable),
		errors.Is(err, ErrUpstreamProtocol),
		errors.Is(err, ErrIncompleteRecord):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
