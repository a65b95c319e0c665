package errors

import (
	"errors"
	"fmt"
)

var (
	// Checkout errors
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	ErrWidgetLoad       = errors.New("payment widget failed to load")
	ErrWidgetNotReady   = errors.New("payment widget still loading")
	ErrWidgetClosed     = errors.New("payment widget closed before completion")

	// Gateway errors
	ErrGatewayRejected    = errors.New("payment rejected by gateway")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayTimeout     = errors.New("gateway request timeout")

	// Reference errors
	ErrDuplicateReference = errors.New("transaction reference already used")

	// Configuration errors
	ErrMissingCredentials = errors.New("payment gateway credentials not configured")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// GatewayError carries a structured decline returned by the payment gateway.
// The gateway considered the request well-formed and rejected it anyway, so
// its message is safe to surface to the user verbatim.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return ErrGatewayRejected.Error()
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return ErrGatewayRejected
}

// NewGatewayError creates a new gateway decline error
func NewGatewayError(message string) *GatewayError {
	return &GatewayError{Message: message}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
