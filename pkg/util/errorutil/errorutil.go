package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigError indicates missing out-of-band configuration (base URL or API
// key). It is fatal and raised before any network call is attempted.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewConfigError constructs a ConfigError.
func NewConfigError(message string) error {
	return &ConfigError{Message: message}
}

// NetworkError indicates a transport-level failure: connection refused, DNS,
// or a cross-origin rejection. The message carries a remediation hint.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError constructs a NetworkError wrapping the underlying cause.
func NewNetworkError(message string, err error) error {
	return &NetworkError{Message: message, Err: err}
}

// APIError indicates the backend rejected a request with a non-success
// status. Message is the backend's own message when one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.Status, e.Message)
}

// NewAPIError constructs an APIError.
func NewAPIError(status int, message string) error {
	return &APIError{Status: status, Message: message}
}

// DomainError standardizes application errors for the HTTP surface.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts the transport error taxonomy and generic errors
// into a DomainError suitable for the HTTP surface.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return &DomainError{
			Code:       "CONFIG_ERROR",
			Message:    cfgErr.Message,
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		}
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return &DomainError{
			Code:       "BACKEND_UNREACHABLE",
			Message:    netErr.Message,
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return &DomainError{
			Code:       "BACKEND_REJECTED",
			Message:    apiErr.Message,
			HTTPStatus: status,
			Err:        err,
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
