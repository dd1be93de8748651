package model

import "fmt"

// Codes carried by domain errors.
const (
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmailTaken        = "EMAIL_TAKEN"
	ErrCodeInvalidCreds      = "INVALID_CREDENTIALS"
)

// DomainError is a business-rule violation reported to the client with a
// human-readable message and a 400 status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewInsufficientStockError reports that an order line requested more units
// than the product has available.
func NewInsufficientStockError(productName string, available int) *DomainError {
	return &DomainError{
		Code:    ErrCodeInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for %s. Available: %d", productName, available),
	}
}

// Common domain errors
var (
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "Email is already registered")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCreds, "Invalid email or password")
)

// NotFoundError maps to a 404 response. Resource is the client-facing noun
// ("Product", "Order", ...).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NewNotFoundError creates a new not-found error.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ValidationError carries field-level validation messages and maps to a 422
// response with a field-keyed error map.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

// NewValidationError creates an empty validation error.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for the given field and returns the error for
// chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors reports whether any field message has been recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
