// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common sentinels across client/service layers.
var (
	// ErrNotFound indicates the requested entity (or stored key) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the backend rejected the credentials (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInUse indicates the entity is still referenced and cannot be deleted (HTTP 409).
	ErrInUse = errors.New("in use, cannot delete")

	// ErrValidation indicates input rejected client-side before any request was sent.
	ErrValidation = errors.New("validation")

	// ErrInvalidAmount indicates a non-positive money amount.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)

	// ErrNotImage indicates an upload payload that cannot be decoded as an image.
	ErrNotImage = errors.New("not an image")
)

// Validationf builds a validation error that matches ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// APIError is a backend failure that has no dedicated sentinel.
type APIError struct {
	Status int    // HTTP status code
	Detail string // best-effort detail extracted from the response body
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), e.Detail)
}

// FromStatus maps an HTTP error status to a sentinel, or to *APIError when none applies.
func FromStatus(status int, detail string) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return wrapDetail(ErrNotFound, detail)
	case http.StatusConflict:
		return wrapDetail(ErrInUse, detail)
	default:
		return &APIError{Status: status, Detail: detail}
	}
}

func wrapDetail(sentinel error, detail string) error {
	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
