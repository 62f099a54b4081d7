package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents different types of errors that can occur during a run
type ErrorCategory string

const (
	// Errors detected before the simulation starts
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
	ErrorCategoryData          ErrorCategory = "DATA"

	// Errors inside the simulation loop
	ErrorCategoryNumeric  ErrorCategory = "NUMERIC"
	ErrorCategoryInternal ErrorCategory = "INTERNAL"
)

// SimError represents a categorized simulation error with context
type SimError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Context    map[string]interface{}
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *SimError) Unwrap() error {
	return e.Underlying
}

// NewSimError creates a new categorized simulation error
func NewSimError(category ErrorCategory, component, operation, message string) *SimError {
	return &SimError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with simulation error context
func WrapError(err error, category ErrorCategory, component, operation string) *SimError {
	if err == nil {
		return nil
	}

	return &SimError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Context:    make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *SimError) WithContext(key string, value interface{}) *SimError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewConfigError creates a configuration error (weights, bounds, missing fields)
func NewConfigError(component, message string) *SimError {
	return NewSimError(ErrorCategoryConfiguration, component, "validate", message)
}

// NewDataError creates a data-unavailable error
func NewDataError(component, message string) *SimError {
	return NewSimError(ErrorCategoryData, component, "load", message)
}

// IsCategory reports whether err is a SimError of the given category
func IsCategory(err error, category ErrorCategory) bool {
	var simErr *SimError
	if stderrors.As(err, &simErr) {
		return simErr.Category == category
	}
	return false
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	return IsCategory(err, ErrorCategoryConfiguration)
}

// IsDataError reports whether err is a data-unavailable error
func IsDataError(err error) bool {
	return IsCategory(err, ErrorCategoryData)
}
